package model

type SongSummary struct {
	FileId   uint32 `json:"file_id"`
	Filename string `json:"filename"`
}

type SongDetail struct {
	SongSummary
	NumMeasures  int           `json:"num_measures"`
	TicksPerBeat uint16        `json:"ticks_per_beat"`
	Metadata     *MidiMetadata `json:"metadata"`
}

type RollResponse struct {
	Name string  `json:"name"`
	Roll [][]int `json:"roll"`
}

type MeasureResponse struct {
	FileId      uint32         `json:"file_id"`
	Measure     int            `json:"measure"`
	Width       int            `json:"width"`
	Instruments []RollResponse `json:"instruments"`
	Drums       *RollResponse  `json:"drums"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
