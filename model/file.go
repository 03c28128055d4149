package model

type FileNumToMidiPath = map[uint32]string

type MidiMetadata struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}
