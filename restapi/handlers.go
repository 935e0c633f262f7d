package restapi

import (
	"context"
	"errors"
	log "log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/command"
	"github.com/sharedcode/meshin/store"
)

// Server exposes a command dispatcher over HTTP.
type Server struct {
	dispatcher *command.Dispatcher
}

// NewServer returns a Server running commands on d.
func NewServer(d *command.Dispatcher) *Server {
	return &Server{dispatcher: d}
}

// CommandRequest is the body of POST /commands.
type CommandRequest struct {
	Args []string `json:"args" binding:"required,min=1"`
}

// CommandResponse carries a command reply.
type CommandResponse struct {
	Result command.Reply `json:"result"`
}

// ZMember is one sorted set entry.
type ZMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// KeyValue is a key and its typed value.
type KeyValue struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Stats reports keyspace counters.
type Stats struct {
	Dirty int64  `json:"dirty"`
	Keys  *int64 `json:"keys,omitempty"`
	// Version of the running module.
	Version string `json:"version"`
}

func errorStatus(err error) int {
	switch meshin.CodeOf(err) {
	case meshin.WrongType, meshin.SyntaxError, meshin.NotAnInteger, meshin.NotAFloat:
		return http.StatusBadRequest
	case meshin.BackendFailure:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func replyError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	}
	c.IndentedJSON(status, gin.H{"message": err.Error(), "code": int(meshin.CodeOf(err))})
}

// ExecuteCommand godoc
// @Summary ExecuteCommand runs one command
// @Schemes
// @Description ExecuteCommand runs the argv in the request body (for example ["SORT","ids","BY","w_*"]) and responds with its reply as JSON.
// @Tags Commands
// @Accept json
// @Produce json
// @Param request body CommandRequest true "Command and arguments"
// @Failure 400 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Success 200 {object} CommandResponse
// @Router /commands [post]
// @Security Bearer
func (s *Server) ExecuteCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"message": err.Error(), "code": int(meshin.SyntaxError)})
		return
	}
	r, err := s.dispatcher.Execute(c.Request.Context(), req.Args)
	if err != nil {
		replyError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, CommandResponse{Result: r})
}

// GetKey godoc
// @Summary GetKey returns the value stored at a key.
// @Schemes
// @Description GetKey responds with the type and contents of the key as JSON. Sets are listed in byte order, sorted sets by score.
// @Tags Keys
// @Accept json
// @Produce json
// @Param			key	path		string		true	"Key to fetch"    minlength(1)
// @Failure 404 {object} map[string]any
// @Success 200 {object} KeyValue
// @Router /keys/{key} [get]
// @Security Bearer
func (s *Server) GetKey(c *gin.Context) {
	key := c.Param("key")
	var kv *KeyValue
	err := s.dispatcher.Engine().Exec(c.Request.Context(), func(ctx context.Context, st store.Store) error {
		found, v, err := st.Get(ctx, key)
		if err != nil || !found {
			return err
		}
		kv = &KeyValue{Key: key, Type: v.Type().String(), Value: renderValue(v)}
		return nil
	})
	if err != nil {
		replyError(c, err)
		return
	}
	if kv == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"message": "key " + key + " not found"})
		return
	}
	c.IndentedJSON(http.StatusOK, kv)
}

func renderValue(v store.Value) any {
	switch t := v.(type) {
	case store.String:
		return string(t)
	case *store.List:
		return slices.Collect(t.All())
	case *store.Set:
		return slices.Sorted(t.All())
	case *store.ZSet:
		out := make([]ZMember, 0, t.Len())
		for sm := range t.All() {
			out = append(out, ZMember{Member: sm.Member, Score: sm.Score})
		}
		return out
	case *store.Hash:
		m := make(map[string]string, t.Len())
		for f, fv := range t.All() {
			m[f] = fv
		}
		return m
	}
	return nil
}

// GetStats godoc
// @Summary GetStats returns keyspace counters.
// @Schemes
// @Description GetStats responds with the dirty counter and, when the backend can count them, the number of keys.
// @Tags Stats
// @Produce json
// @Failure 503 {object} map[string]any
// @Success 200 {object} Stats
// @Router /stats [get]
// @Security Bearer
func (s *Server) GetStats(c *gin.Context) {
	stats := Stats{Version: meshin.Version}
	err := s.dispatcher.Engine().Exec(c.Request.Context(), func(ctx context.Context, st store.Store) error {
		stats.Dirty = st.Dirty()
		kc, ok := st.(store.KeyCounter)
		if !ok {
			return nil
		}
		n, err := kc.KeyCount(ctx)
		if err != nil {
			return err
		}
		stats.Keys = &n
		return nil
	})
	if err != nil {
		replyError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, stats)
}
