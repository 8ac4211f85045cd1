package dto

type NeighborResponse struct {
	Index      int     `json:"index"`
	SourceText string  `json:"source_text"`
	DistanceKm float64 `json:"distance_km"`
}

type SessionResponse struct {
	Records []LocationResponse `json:"records"`
	Active  *LocationResponse  `json:"active"`
	Copied  bool               `json:"copied"`
	Nearest *NeighborResponse  `json:"nearest,omitempty"`
}

type SubmitRequest struct {
	Name string `json:"name"`
}

type SubmitResponse struct {
	Accepted bool            `json:"accepted"`
	Session  SessionResponse `json:"session"`
}

type ShareLinkResponse struct {
	Service string `json:"service"`
	URL     string `json:"url"`
}

type ShareResponse struct {
	Reference string              `json:"reference"`
	Native    bool                `json:"native"`
	Links     []ShareLinkResponse `json:"links"`
}

type CopyResponse struct {
	Copied bool   `json:"copied"`
	Digest string `json:"digest"`
}

type ExportResponse struct {
	Filename string `json:"filename"`
}

type LoadRequest struct {
	URL string `json:"url"`
}

type LoadResponse struct {
	Loaded  bool            `json:"loaded"`
	Session SessionResponse `json:"session"`
}
