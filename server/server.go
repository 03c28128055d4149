// Package server exposes a folder of songs over HTTP so their measures can be
// browsed as piano rolls.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/grooveset/db"
	"github.com/jsphweid/grooveset/file"
	"github.com/jsphweid/grooveset/measure"
	"github.com/jsphweid/grooveset/midi"
	"github.com/jsphweid/grooveset/model"
	"github.com/jsphweid/grooveset/pipeline"
	"github.com/jsphweid/grooveset/util"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	mediaDir string
	songs    model.FileNumToMidiPath
	metadata db.MetadataSource
	opts     pipeline.Options
}

// New serves songs, which are ids to paths under mediaDir. metadata may be
// nil.
func New(mediaDir string, songs model.FileNumToMidiPath, metadata db.MetadataSource, opts pipeline.Options) *Server {
	return &Server{
		mediaDir: mediaDir,
		songs:    songs,
		metadata: metadata,
		opts:     opts,
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/songs", s.handleSongs).Methods("GET")
	router.HandleFunc("/songs/{id}", s.handleSong).Methods("GET")
	router.HandleFunc("/songs/{id}/measures/{n}", s.handleMeasure).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(router)
}

func (s *Server) ListenAndServe(addr string) error {
	logrus.Infof("Serving %v songs on %v", len(s.songs), addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("Could not write response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func (s *Server) summary(fileId uint32) model.SongSummary {
	return model.SongSummary{FileId: fileId, Filename: file.Relative(s.mediaDir, s.songs[fileId])}
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	res := make([]model.SongSummary, 0, len(s.songs))
	for _, id := range util.GetKeys(s.songs) {
		res = append(res, s.summary(id))
	}
	writeJSON(w, http.StatusOK, res)
}

// loadSong writes the error response itself and returns nil when the song
// can't be served.
func (s *Server) loadSong(w http.ResponseWriter, r *http.Request) (uint32, *model.Document) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Song id must be a number")
		return 0, nil
	}
	path, ok := s.songs[uint32(id)]
	if !ok {
		writeError(w, http.StatusNotFound, "Song not found")
		return 0, nil
	}
	doc, err := midi.Load(path)
	if err != nil {
		logrus.WithFields(logrus.Fields{"file": path, "error": err}).Warn("Could not load song")
		writeError(w, http.StatusUnprocessableEntity, "Song could not be read")
		return 0, nil
	}
	return uint32(id), doc
}

func (s *Server) lookupMetadata(filename string) *model.MidiMetadata {
	if s.metadata == nil {
		return nil
	}
	res, err := s.metadata.GetMidiMetadatas([]string{filename})
	if err != nil {
		logrus.WithError(err).Warn("Could not get metadata")
		return nil
	}
	if m, ok := res[filename]; ok {
		return &m
	}
	return nil
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	id, doc := s.loadSong(w, r)
	if doc == nil {
		return
	}
	numMeasures, err := measure.Count(doc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	summary := s.summary(id)
	writeJSON(w, http.StatusOK, model.SongDetail{
		SongSummary:  summary,
		NumMeasures:  numMeasures,
		TicksPerBeat: doc.TicksPerBeat,
		Metadata:     s.lookupMetadata(summary.Filename),
	})
}

func toRollResponse(roll pipeline.Roll) model.RollResponse {
	res := model.RollResponse{Name: roll.Name, Roll: make([][]int, len(roll.Matrix))}
	for pitch, row := range roll.Matrix {
		res.Roll[pitch] = make([]int, len(row))
		for i, v := range row {
			res.Roll[pitch][i] = int(v)
		}
	}
	return res
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Measure must be a number")
		return
	}
	id, doc := s.loadSong(w, r)
	if doc == nil {
		return
	}
	numMeasures, err := measure.Count(doc)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if n < 1 || n > numMeasures {
		writeError(w, http.StatusNotFound, "Measure not found")
		return
	}

	rolls, err := pipeline.RollMeasure(doc, n, s.opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res := model.MeasureResponse{
		FileId:      id,
		Measure:     n,
		Instruments: make([]model.RollResponse, 0, len(rolls.Instruments)),
	}
	for _, inst := range rolls.Instruments {
		res.Instruments = append(res.Instruments, toRollResponse(inst))
		res.Width = inst.Matrix.Width()
	}
	if rolls.Drums != nil {
		drums := toRollResponse(*rolls.Drums)
		res.Drums = &drums
		res.Width = rolls.Drums.Matrix.Width()
	}
	writeJSON(w, http.StatusOK, res)
}
