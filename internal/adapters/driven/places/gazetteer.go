package places

// defaultGazetteer seeds the lexicon with US states, larger North
// American cities and the countries the directory serves. The ingest
// pipeline appends localities seen in producer addresses at startup.
var defaultGazetteer = []string{
	// US states
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon",
	"pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming",

	// Cities
	"portland", "eugene", "salem", "bend", "seattle", "spokane", "tacoma",
	"san francisco", "los angeles", "san diego", "sacramento", "oakland",
	"denver", "boulder", "austin", "dallas", "houston", "san antonio",
	"chicago", "minneapolis", "madison", "detroit", "boston", "providence",
	"philadelphia", "pittsburgh", "baltimore", "richmond", "atlanta",
	"nashville", "asheville", "charlotte", "raleigh", "miami", "orlando",
	"tampa", "phoenix", "tucson", "albuquerque", "santa fe", "salt lake city",
	"boise", "missoula", "vancouver", "toronto", "montreal", "calgary",

	// Countries
	"united states", "canada", "mexico", "united kingdom", "ireland",
	"france", "germany", "spain", "portugal", "italy", "netherlands",
	"australia", "new zealand", "japan", "brazil", "argentina", "chile",
}
