package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/drivegate/internal/core/domain"
)

// WelcomeMessage is returned by the root route.
const WelcomeMessage = "Welcome to the Drive Health Recommendation API"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to the driving ports.
type Server struct {
	ports    *Ports
	stream   domain.StreamSettings
	mux      *http.ServeMux
	upgrader websocket.Upgrader
}

// NewServer creates the gateway API. stream supplies the push intervals and
// the per-connection queue bounds.
func NewServer(ports *Ports, stream domain.StreamSettings) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if stream.QueueSize < 1 {
		stream.QueueSize = 1
	}

	s := &Server{
		ports:  ports,
		stream: stream,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Origins are not restricted, matching the CORS policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s, nil
}

// Handler returns the routed handler wrapped in CORS and access logging.
func (s *Server) Handler() http.Handler {
	return withAccessLog(withCORS(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /status", s.handleStatus)
	s.mux.HandleFunc("GET /drives", s.handleDrives)
	s.mux.HandleFunc("GET /scan/{driveName}", s.handleScan)
	s.mux.HandleFunc("GET /repair/{driveName}", s.handleRepair)
	s.mux.HandleFunc("POST /clone", s.handleClone)
	s.mux.HandleFunc("POST /partition", s.handlePartition)
	s.mux.HandleFunc("POST /recommendation", s.handleRecommendation)
	s.mux.HandleFunc("GET /logs", s.handleLogs)
	s.mux.HandleFunc("GET /health/{driveName}", s.handleHealth)
	s.mux.HandleFunc("GET /invocations", s.handleInvocations)

	s.mux.HandleFunc("GET /ws", s.handleHeartbeatStream)
	s.mux.HandleFunc("GET /ws/drives", s.handleDrivesStream)
	s.mux.HandleFunc("GET /ws/health/{driveName}", s.handleHealthStream)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

// statusBody is the response of GET /status.
type statusBody struct {
	Healthy     bool              `json:"healthy"`
	Executables map[string]string `json:"executables"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	body := statusBody{Healthy: true, Executables: map[string]string{}}
	if s.ports.Status != nil {
		body.Healthy = s.ports.Status.Healthy()
		body.Executables = s.ports.Status.Status()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleDrives(w http.ResponseWriter, r *http.Request) {
	result, err := s.ports.Drives.Detect(r.Context())
	writeResult(w, r, result, err)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	result, err := s.ports.Drives.Scan(r.Context(), r.PathValue("driveName"))
	writeResult(w, r, result, err)
}

func (s *Server) handleRepair(w http.ResponseWriter, r *http.Request) {
	dryRun, err := queryBool(r, "dry_run")
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.ports.Drives.Repair(r.Context(), r.PathValue("driveName"), dryRun)
	writeResult(w, r, result, err)
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	var req domain.CloneRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.ports.Drives.Clone(r.Context(), req)
	writeResult(w, r, result, err)
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	dryRun, err := queryBool(r, "dry_run")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req domain.PartitionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.DryRun = dryRun
	result, err := s.ports.Drives.Partition(r.Context(), req)
	writeResult(w, r, result, err)
}

// metricsBody mirrors domain.DriveRecord with every field required.
type metricsBody struct {
	DriveName       *string  `json:"driveName"`
	Temperature     *float64 `json:"temperature"`
	ReadErrorCount  *int     `json:"readErrorCount"`
	WriteErrorCount *int     `json:"writeErrorCount"`
	OverallHealth   *float64 `json:"overallHealth"`
	SmartStatus     *string  `json:"smartStatus"`
}

func (b *metricsBody) record() (domain.DriveRecord, error) {
	missing := func(field string) error {
		return &domain.ValidationError{Field: field, Reason: "required"}
	}
	switch {
	case b.DriveName == nil:
		return domain.DriveRecord{}, missing("driveName")
	case b.Temperature == nil:
		return domain.DriveRecord{}, missing("temperature")
	case b.ReadErrorCount == nil:
		return domain.DriveRecord{}, missing("readErrorCount")
	case b.WriteErrorCount == nil:
		return domain.DriveRecord{}, missing("writeErrorCount")
	case b.OverallHealth == nil:
		return domain.DriveRecord{}, missing("overallHealth")
	case b.SmartStatus == nil:
		return domain.DriveRecord{}, missing("smartStatus")
	}
	return domain.DriveRecord{
		DriveName:       *b.DriveName,
		Temperature:     *b.Temperature,
		ReadErrorCount:  *b.ReadErrorCount,
		WriteErrorCount: *b.WriteErrorCount,
		OverallHealth:   *b.OverallHealth,
		SmartStatus:     *b.SmartStatus,
	}, nil
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	var body metricsBody
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	metrics, err := body.record()
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.ports.Drives.Recommend(r.Context(), metrics)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	result, err := s.ports.Drives.Logs(r.Context())
	writeResult(w, r, result, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result, err := s.ports.Drives.Health(r.Context(), r.PathValue("driveName"))
	writeResult(w, r, result, err)
}

func (s *Server) handleInvocations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, &domain.ValidationError{Field: "limit", Reason: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	if s.ports.History == nil {
		writeJSON(w, http.StatusOK, []domain.InvocationRecord{})
		return
	}
	records, err := s.ports.History.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// writeResult returns the payload of a capability invocation verbatim.
func writeResult(w http.ResponseWriter, r *http.Request, result *domain.InvocationResult, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result.Payload)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}

// decodeBody reads a JSON request body into v. Malformed bodies are
// validation failures.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// queryBool parses an optional boolean query parameter. Absent means false.
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &domain.ValidationError{Field: name, Reason: "must be a boolean"}
	}
	return v, nil
}
