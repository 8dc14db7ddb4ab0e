package scoring

// relatedGenres lists genre pairs considered musically adjacent. The check is
// bidirectional substring containment, so "Alternative Rock" still relates to
// "Rock". Entries are lowercase.
var relatedGenres = [][2]string{
	{"rock", "alternative"},
	{"jazz", "blues"},
	{"pop", "funk"},
	{"electronic", "dance"},
	{"soul", "r&b"},
	{"country", "americana"},
	{"classical", "chamber"},
	{"reggae", "ska"},
}

// keyAdjacency maps each major key to its harmonically adjacent neighbors:
// dominant, subdominant, relative minor, and the dominant's relative minor.
// Keys are stored uppercase with an "M" suffix for minors.
var keyAdjacency = map[string][]string{
	"C":  {"G", "F", "AM", "EM"},
	"G":  {"D", "C", "EM", "BM"},
	"D":  {"A", "G", "BM", "F#M"},
	"A":  {"E", "D", "F#M", "C#M"},
	"E":  {"B", "A", "C#M", "G#M"},
	"B":  {"F#", "E", "G#M", "D#M"},
	"F#": {"C#", "B", "D#M", "A#M"},
	"C#": {"G#", "F#", "A#M", "FM"},
	"F":  {"C", "BB", "DM", "AM"},
	"BB": {"F", "EB", "GM", "DM"},
	"EB": {"BB", "AB", "CM", "GM"},
	"AB": {"EB", "DB", "FM", "CM"},
	"DB": {"AB", "GB", "BBM", "FM"},
	"GB": {"DB", "CB", "EBM", "BBM"},
}

// enharmonicEquivalents maps each key spelling to the alternate spelling of
// the same pitch, in both directions.
var enharmonicEquivalents = map[string]string{
	"B":  "CB",
	"CB": "B",
	"F#": "GB",
	"GB": "F#",
	"C#": "DB",
	"DB": "C#",
	"G#": "AB",
	"AB": "G#",
	"D#": "EB",
	"EB": "D#",
	"A#": "BB",
	"BB": "A#",
	"E":  "FB",
	"FB": "E",
}
