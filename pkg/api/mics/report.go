package mics

type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// TwinGroup lists the original nodes collapsed into one reduced node.
type TwinGroup struct {
	Node    string   `json:"node"`
	Members []string `json:"members"`
}

type Variable struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Report struct {
	RunID         string      `json:"runId"`
	Input         string      `json:"input"`
	FileType      string      `json:"fileType"`
	Fingerprint   string      `json:"fingerprint"`
	OriginalShape Shape       `json:"originalShape"`
	ReducedShape  Shape       `json:"reducedShape"`
	TwinGroups    []TwinGroup `json:"twinGroups,omitempty"`
	Status        string      `json:"status"`
	Message       string      `json:"message,omitempty"`
	Variables     []Variable  `json:"variables,omitempty"`
	// Monitors are labels of the reduced graph, OriginalMonitors the labels of
	// their representatives in the input graph.
	Monitors         []string `json:"monitors,omitempty"`
	OriginalMonitors []string `json:"originalMonitors,omitempty"`
	Objective        *int     `json:"objective,omitempty"`
	NodeCount        int      `json:"nodeCount"`
	Savings          *float64 `json:"savings,omitempty"`
	Elapsed          Duration `json:"elapsed"`
}
