package verseparser

// PortugueseBooks maps the abbreviations used in Brazilian liturgical books
// (CNBB lectionary) to the English book names understood by the lookup service.
// Keys are case-sensitive and keep their diacritics.
var PortugueseBooks = map[string]string{
	// Old Testament
	"Gn":   "Genesis",
	"Ex":   "Exodus",
	"Lv":   "Leviticus",
	"Nm":   "Numbers",
	"Dt":   "Deuteronomy",
	"Js":   "Joshua",
	"Jz":   "Judges",
	"Rt":   "Ruth",
	"1Sm":  "1 Samuel",
	"2Sm":  "2 Samuel",
	"1Rs":  "1 Kings",
	"2Rs":  "2 Kings",
	"1Cr":  "1 Chronicles",
	"2Cr":  "2 Chronicles",
	"Esd":  "Ezra",
	"Ne":   "Nehemiah",
	"Tb":   "Tobit",
	"Jt":   "Judith",
	"Est":  "Esther",
	"1Mc":  "1 Maccabees",
	"2Mc":  "2 Maccabees",
	"Jó":   "Job",
	"Jb":   "Job",
	"Sl":   "Psalm",
	"Pr":   "Proverbs",
	"Ecl":  "Ecclesiastes",
	"Ct":   "Song of Songs",
	"Sb":   "Wisdom",
	"Eclo": "Sirach",
	"Is":   "Isaiah",
	"Jr":   "Jeremiah",
	"Lm":   "Lamentations",
	"Br":   "Baruch",
	"Ez":   "Ezekiel",
	"Dn":   "Daniel",
	"Os":   "Hosea",
	"Jl":   "Joel",
	"Am":   "Amos",
	"Ab":   "Obadiah",
	"Jn":   "Jonah",
	"Mq":   "Micah",
	"Na":   "Nahum",
	"Hab":  "Habakkuk",
	"Sf":   "Zephaniah",
	"Ag":   "Haggai",
	"Zc":   "Zechariah",
	"Ml":   "Malachi",

	// New Testament
	"Mt":   "Matthew",
	"Mc":   "Mark",
	"Lc":   "Luke",
	"Jo":   "John",
	"At":   "Acts",
	"Rm":   "Romans",
	"1Cor": "1 Corinthians",
	"2Cor": "2 Corinthians",
	"Gl":   "Galatians",
	"Ef":   "Ephesians",
	"Fl":   "Philippians",
	"Cl":   "Colossians",
	"1Ts":  "1 Thessalonians",
	"2Ts":  "2 Thessalonians",
	"1Tm":  "1 Timothy",
	"2Tm":  "2 Timothy",
	"Tt":   "Titus",
	"Fm":   "Philemon",
	"Hb":   "Hebrews",
	"Tg":   "James",
	"1Pd":  "1 Peter",
	"2Pd":  "2 Peter",
	"1Jo":  "1 John",
	"2Jo":  "2 John",
	"3Jo":  "3 John",
	"Jd":   "Jude",
	"Ap":   "Revelation",
}
