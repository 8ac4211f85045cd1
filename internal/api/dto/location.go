package dto

type LocationResponse struct {
	SourceText  string  `json:"source_text"`
	Digest      string  `json:"digest"`
	LatFieldHex string  `json:"lat_field_hex"`
	LonFieldHex string  `json:"lon_field_hex"`
	LatField    uint32  `json:"lat_field"`
	LonField    uint32  `json:"lon_field"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CellToken   string  `json:"cell_token"`
}
