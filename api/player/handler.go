// Package player exposes the playback session over a WebSocket. One
// connection owns one session; commands flow in as JSON messages and state
// snapshots flow back as events.
package player

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/screenlab/screener-api/api/types"
	"github.com/screenlab/screener-api/internal/logging"
	"github.com/screenlab/screener-api/internal/player"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API is consumed cross-origin by the player frontend.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect upgrades the request to a WebSocket and runs a playback session
// until the client disconnects
// @Summary      Player session
// @Description  WebSocket endpoint for a playback session: select, play, pause, seek, generate
// @Tags         player
// @Router       /api/v1/player/session [get]
func Connect(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			deps.Logger.Warn().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		runSession(c.Request.Context(), deps, conn)
	}
}

func runSession(ctx context.Context, deps *types.Dependencies, conn *websocket.Conn) {
	defer conn.Close()

	// Dedicated writer goroutine: gorilla connections allow one concurrent
	// writer, and events arrive from both the read loop and async loads.
	events := make(chan player.Event, 64)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for event := range events {
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}()

	emit := func(event player.Event) {
		select {
		case events <- event:
		default:
			deps.Logger.Warn().Str("event", event.Type).Msg("Dropping event, client too slow")
		}
	}

	session := player.NewSession(
		deps.VideoService,
		deps.TagService,
		deps.MediaStore,
		deps.Waveforms,
		deps.WaveformResolution,
		logging.WithComponent(deps.Logger, "player"),
		emit,
	)
	// Registered sessions receive tag mutations made over REST while the
	// connection is open.
	deps.Sessions.Add(session)
	defer func() {
		deps.Sessions.Remove(session)
		session.Close()
		close(events)
		<-writerDone
	}()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				deps.Logger.Debug().Err(err).Msg("Player connection closed")
			}
			return
		}

		switch msg.Type {
		case "select":
			if err := session.Select(ctx, msg.VideoID); err != nil {
				emit(player.Event{Type: "error", Error: err.Error()})
			}

		case "generate":
			go generateAndMerge(ctx, deps, session, msg.VideoID, emit)

		default:
			cmd, err := parseCommand(msg)
			if err != nil {
				emit(player.Event{Type: "error", Error: err.Error()})
				continue
			}
			if err := session.Apply(cmd); err != nil {
				emit(player.Event{Type: "error", Error: err.Error()})
			}
		}
	}
}

// generateAndMerge runs the analyzer and folds the batch into every session
// watching the video, this one included. Each merge drops the batch on its
// own when that session's selection has moved on.
func generateAndMerge(ctx context.Context, deps *types.Dependencies, session *player.Session, videoID string, emit func(player.Event)) {
	result, err := deps.GenerationService.GenerateTags(ctx, videoID)
	if err != nil {
		emit(player.Event{Type: "error", Error: err.Error()})
		return
	}
	if deps.Sessions != nil {
		deps.Sessions.MergeGenerated(videoID, result.Created)
		return
	}
	session.MergeGenerated(videoID, result.Created)
}
