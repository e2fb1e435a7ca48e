package domain

// Record is a single intelligence item as it appears in the dashboard
// dataset. All fields are free-form strings; Date is expected to be
// ISO-8601 but is never validated or parsed by this service.
type Record struct {
	Type     string `json:"type" db:"type"`
	Category string `json:"category" db:"category"`
	Country  string `json:"country" db:"country"`
	Date     string `json:"date" db:"date"`
	Headline string `json:"headline" db:"headline"`
	Body     string `json:"body" db:"body"`
}

// record type labels produced by classification
const (
	TypeHighPriority   = "high priority"
	TypeMediumPriority = "medium priority"
	TypeForecastAlert  = "forecast alert"
	TypeStrategicWatch = "strategic watch"
	TypeIrrelevant     = "irrelevant"
)

// FallbackRecords is the static dataset served when the remote dashboard
// document can't be retrieved. The slice is read-only and must stay in this
// exact order, callers rely on it being identical across invocations.
var FallbackRecords = []Record{
	{
		Type:     TypeHighPriority,
		Category: "Geopolitical Instability",
		Country:  "UA",
		Date:     "2024-11-18",
		Headline: "Escalation of strikes on energy infrastructure ahead of winter",
		Body:     "Coordinated strikes on power generation facilities have degraded grid capacity in several regions. Prolonged outages raise the risk of civil disruption and accelerate refugee flows into neighboring states. Businesses with regional exposure should review continuity plans for the winter period.",
	},
	{
		Type:     TypeMediumPriority,
		Category: "Economic Warfare & Control",
		Country:  "CN",
		Date:     "2024-11-15",
		Headline: "New export controls announced on critical mineral processing technology",
		Body:     "Restrictions target gallium and germanium processing equipment, tightening an already concentrated supply chain. Semiconductor and defense manufacturers face extended lead times and price volatility. Secondary effects are expected across battery and photovoltaic production.",
	},
	{
		Type:     TypeForecastAlert,
		Category: "Structural & Environmental Risk",
		Country:  "PA",
		Date:     "2024-11-12",
		Headline: "Drought conditions projected to cut canal transit capacity through Q1",
		Body:     "Reservoir levels remain below seasonal norms, and daily transit slots are expected to be reduced further. Shippers are rerouting via Suez and the US rail land bridge, adding cost and time. Container rates on affected lanes are forecast to rise through the first quarter.",
	},
	{
		Type:     TypeStrategicWatch,
		Category: "Security & Technology Threat",
		Country:  "US",
		Date:     "2024-11-10",
		Headline: "State-linked intrusion campaign targeting telecom core networks",
		Body:     "An ongoing espionage campaign has compromised lawful-intercept systems at multiple carriers. The access enables long-term collection against high-value targets and is difficult to evict. Organizations should assume metadata exposure and reassess sensitive communication channels.",
	},
}
