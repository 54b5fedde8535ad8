package api

// WordResponse is returned by the word endpoint.
type WordResponse struct {
	Theme string `json:"theme"`
	Word  string `json:"word"`
}

// PoolStatusResponse describes one theme's pool.
type PoolStatusResponse struct {
	Theme        string `json:"theme"`
	Size         int    `json:"size"`
	MinThreshold int    `json:"min_threshold"`
	NeedsRefill  bool   `json:"needs_refill"`
	Refilling    bool   `json:"refilling"`
}

// PoolsResponse lists the sizes of all known pools.
type PoolsResponse struct {
	Pools map[string]int `json:"pools"`
}

// AddWordsRequest is the payload for manually adding words to a pool.
type AddWordsRequest struct {
	Words []string `json:"words" validate:"required,min=1,max=500,dive,required,max=100"`
}

// BackendsResponse describes the generation backend registry.
type BackendsResponse struct {
	Active     string   `json:"active"`
	Registered []string `json:"registered"`
	Ready      []string `json:"ready"`
}

// ThemesResponse lists known themes.
type ThemesResponse struct {
	Themes []string `json:"themes"`
}
