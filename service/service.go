package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/cbsinteractive/pkg/timecode"
	"github.com/sirupsen/logrus"

	"github.com/cbsinteractive/clip-trimmer/config"
	"github.com/cbsinteractive/clip-trimmer/db"
	"github.com/cbsinteractive/clip-trimmer/job"
	"github.com/cbsinteractive/clip-trimmer/media"
	"github.com/cbsinteractive/clip-trimmer/notify"
	"github.com/cbsinteractive/clip-trimmer/timecodec"
)

const defaultListLimit = 20

// Media is the part of media.Client the server uses
type Media interface {
	Probe(ctx context.Context, path string) (*media.VideoInfo, error)
	Cut(ctx context.Context, input string, start, end float64, notes string) (*media.CutResult, error)
	Check(ctx context.Context) error
}

type Server struct {
	Config *config.Config
	DB     db.Repository
	Media  Media
	Codec  timecodec.Codec

	// Notifier receives every message shown to a user because their
	// input was rejected. Reporter receives unexpected failures.
	Notifier notify.Notifier
	Reporter notify.Reporter

	logger *logrus.Logger

	request
}

// New returns a server with no-op notification and reporting
func New(cfg *config.Config, logger *logrus.Logger, repo db.Repository, m Media) *Server {
	return &Server{
		Config:   cfg,
		DB:       repo,
		Media:    m,
		Codec:    timecodec.New(cfg.Locale),
		Notifier: notify.Nop{},
		Reporter: notify.Nop{},
		logger:   logger,
	}
}

func (s Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.request = newRequest(rw, r, s.logger)
	defer s.request.finalize()
	s.serve()
}

func (s *Server) serve() bool {
	switch s.chop() {
	case "probe":
		if s.method() != http.MethodGet {
			break
		}
		return s.probe()
	case "validate":
		if s.method() != http.MethodPost {
			break
		}
		return s.validate()
	case "cuts":
		id := s.chop()
		switch {
		case id == "" && s.method() == http.MethodGet:
			return s.listCuts()
		case id == "" && s.method() == http.MethodPost:
			return s.createCut()
		case id == "":
		case !job.ValidID(id):
			return s.writeerror("bad job id", http.StatusBadRequest, nil)
		case s.method() == http.MethodGet:
			return s.getCut(id)
		case s.method() == http.MethodDelete:
			return s.deleteCut(id)
		}
	case "health":
		if err := s.Media.Check(s.request.ctx); err != nil {
			return s.writeerror("media tools unavailable", http.StatusServiceUnavailable, err)
		}
		return s.writebody(map[string]bool{"ok": true})
	default:
		return s.writeerror("bad request path", http.StatusNotFound, nil)
	}
	return s.writeerror("method not allowed", http.StatusMethodNotAllowed, nil)
}

func (s *Server) method() string {
	return s.request.r.Method
}

// reject shows msg to the user and writes it as a client error
func (s *Server) reject(msg string, code int, err error) bool {
	s.Notifier.Notify(msg)
	return s.writeerror(msg, code, err)
}

// fail reports an unexpected error and writes a server error
func (s *Server) fail(msg string, err error) bool {
	s.Reporter.ReportException(err)
	return s.writeerror(msg, http.StatusInternalServerError, err)
}

// ProbeResponse is a probed clip with its duration pre-formatted
type ProbeResponse struct {
	media.VideoInfo
	DurationInput   string `json:"durationInput"`
	DurationDisplay string `json:"durationDisplay"`
}

func (s *Server) probe() bool {
	p := s.request.r.URL.Query().Get("path")
	if p == "" {
		return s.writeerror("missing path", http.StatusBadRequest, nil)
	}
	info, err := s.Media.Probe(s.request.ctx, p)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return s.reject("file not found", http.StatusNotFound, err)
	case errors.Is(err, media.ErrNotFile), errors.Is(err, media.ErrNoVideo):
		return s.reject(err.Error(), http.StatusUnprocessableEntity, err)
	default:
		return s.fail("probe failed", err)
	}
	return s.writebody(ProbeResponse{
		VideoInfo:       *info,
		DurationInput:   timecodec.FormatInput(info.Duration),
		DurationDisplay: timecodec.FormatDisplay(info.Duration, true),
	})
}

// ValidateRequest carries the start and end fields as typed by the user
type ValidateRequest struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration float64 `json:"duration"`
}

// ValidateResponse is the verdict on a ValidateRequest. Error is null iff
// Valid. Start and End are null when the field did not parse; Duration
// and Description are only set when both did.
type ValidateResponse struct {
	Valid       bool     `json:"valid"`
	Error       *string  `json:"error"`
	Start       *float64 `json:"start"`
	End         *float64 `json:"end"`
	StartInput  string   `json:"startInput,omitempty"`
	EndInput    string   `json:"endInput,omitempty"`
	Duration    float64  `json:"duration"`
	Description string   `json:"description"`
}

func (s *Server) validate() bool {
	var req ValidateRequest
	if !s.request.UnmarshalJSON(&req) {
		return s.writeerror("bad request body", http.StatusBadRequest, s.request.err)
	}
	resp := s.check(req)
	if !resp.Valid {
		s.Notifier.Notify(*resp.Error)
	}
	return s.writebody(resp)
}

func (s *Server) check(req ValidateRequest) ValidateResponse {
	text := s.Codec.Text()
	var resp ValidateResponse
	start, serr := timecodec.Parse(req.Start)
	end, eerr := timecodec.Parse(req.End)
	if serr == nil {
		resp.Start = &start
		resp.StartInput = timecodec.FormatInput(start)
	}
	if eerr == nil {
		resp.End = &end
		resp.EndInput = timecodec.FormatInput(end)
	}
	if serr == nil && eerr == nil {
		resp.Duration = timecodec.Duration(start, end)
		resp.Description = s.Codec.Describe(start, end)
	}

	var msg string
	switch {
	case serr != nil:
		msg = text.BadStart
	case eerr != nil:
		msg = text.BadEnd
	default:
		v := timecodec.ValidateRange(start, end, req.Duration)
		if v.Valid {
			resp.Valid = true
			return resp
		}
		msg = s.Codec.Message(v.Err)
	}
	resp.Error = &msg
	return resp
}

// CutRequest asks for [Start, End) of Input to be copied into a new file
type CutRequest struct {
	Input string `json:"input"`
	Start string `json:"start"`
	End   string `json:"end"`
	Notes string `json:"notes,omitempty"`
}

func (s *Server) createCut() bool {
	var req CutRequest
	if !s.request.UnmarshalJSON(&req) {
		return s.writeerror("bad request body", http.StatusBadRequest, s.request.err)
	}
	if req.Input == "" {
		return s.writeerror("missing input", http.StatusBadRequest, nil)
	}
	text := s.Codec.Text()
	start, err := timecodec.Parse(req.Start)
	if err != nil {
		return s.reject(text.BadStart, http.StatusBadRequest, err)
	}
	end, err := timecodec.Parse(req.End)
	if err != nil {
		return s.reject(text.BadEnd, http.StatusBadRequest, err)
	}

	j, err := job.New(req.Input, timecode.Range{start, end}, req.Notes)
	if err != nil {
		return s.fail("creating job", err)
	}
	j.Start()
	if err := s.DB.Put(j); err != nil {
		return s.fail("storing job", err)
	}

	res, err := s.Media.Cut(s.request.ctx, req.Input, start, end, req.Notes)
	code := http.StatusCreated
	switch {
	case err == nil:
		j.Finish(res.Output, res.Size, res.Source)
	case rangeError(err):
		j.Fail(s.Codec.Message(err))
		s.Notifier.Notify(j.Msg)
		code = http.StatusUnprocessableEntity
	case errors.Is(err, os.ErrNotExist):
		j.Fail("file not found")
		s.Notifier.Notify(j.Msg)
		code = http.StatusNotFound
	default:
		var se *media.InsufficientSpaceError
		if errors.As(err, &se) {
			j.Fail(se.Error())
			s.Notifier.Notify(j.Msg)
			code = http.StatusInsufficientStorage
			break
		}
		j.Fail(err.Error())
		s.Reporter.ReportException(err)
		code = http.StatusInternalServerError
	}
	s.request.logerr = err
	if perr := s.DB.Put(j); perr != nil {
		return s.fail("storing job", perr)
	}
	return s.writestatus(code, j)
}

func rangeError(err error) bool {
	for _, target := range []error{
		timecodec.ErrNegativeStart,
		timecodec.ErrEndNotAfterStart,
		timecodec.ErrStartExceedsDuration,
		timecodec.ErrEndExceedsDuration,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Server) getCut(id string) bool {
	j, err := s.DB.Get(id)
	if errors.Is(err, db.ErrJobNotFound) {
		return s.writeerror("job not found", http.StatusNotFound, err)
	} else if err != nil {
		return s.fail("loading job", err)
	}
	return s.writebody(j)
}

func (s *Server) deleteCut(id string) bool {
	if _, err := s.DB.Get(id); errors.Is(err, db.ErrJobNotFound) {
		return s.writeerror("job not found", http.StatusNotFound, err)
	} else if err != nil {
		return s.fail("loading job", err)
	}
	if err := s.DB.Delete(id); err != nil {
		return s.fail("deleting job", err)
	}
	return s.writebody(map[string]string{"deleted": id})
}

func (s *Server) listCuts() bool {
	limit := defaultListLimit
	if v := s.request.r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return s.writeerror("bad limit", http.StatusBadRequest, err)
		}
		limit = n
	}
	jobs, err := s.DB.List(limit)
	if err != nil {
		return s.fail("listing jobs", err)
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	return s.writebody(jobs)
}

// PlatformError implements a well-known error response for http clients
// encountering an error when using the service.
type PlatformError struct {
	Ok     bool   `json:"ok"`
	Status int    `json:"status"`
	Rid    uint64 `json:"rid"`
	Msg    string `json:"msg,omitempty"`
}

// String returns the json-formatted platform response
func (p PlatformError) String() string {
	data, _ := json.Marshal(p)
	return string(data)
}
