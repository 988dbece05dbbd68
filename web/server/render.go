package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const (
	requestWait = 10 * time.Second
	writeWait   = 10 * time.Second
	sendBuffer  = 100
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is every server-to-client frame on the render socket. Exactly one
// payload field is set, matching Type.
type Message struct {
	Type     string          `json:"type"` // "progress", "console", "complete", "error"
	Progress *ProgressUpdate `json:"progress,omitempty"`
	Console  *ConsoleMessage `json:"console,omitempty"`
	Complete *CompleteUpdate `json:"complete,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ProgressUpdate is sent after every finished row
type ProgressUpdate struct {
	Rows  int `json:"rows"`
	Total int `json:"total"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ElapsedMs      int64  `json:"elapsedMs"`
	Stats          Stats  `json:"stats"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

// handleRender upgrades to a websocket, reads one RenderRequest and streams
// the render back. The connection is closed once the image has been sent.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Single writer goroutine; it keeps draining after a failed write so senders never block forever
	out := make(chan Message, sendBuffer)
	written := make(chan struct{})
	go writeMessages(conn, out, written)

	s.serveRender(conn, out)

	close(out)
	<-written
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// serveRender runs one request/response exchange, reporting failures as error messages
func (s *Server) serveRender(conn *websocket.Conn, out chan<- Message) {
	var req RenderRequest
	conn.SetReadDeadline(time.Now().Add(requestWait))
	if err := conn.ReadJSON(&req); err != nil {
		out <- errorMessage(fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if err := req.applyDefaults(); err != nil {
		out <- errorMessage(fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		out <- errorMessage(err.Error())
		return
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, req.config())
	if err != nil {
		out <- errorMessage(fmt.Sprintf("Render setup failed: %v", err))
		return
	}
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	raytracer.SetLogger(NewWebLogger(renderID, out))

	startTime := time.Now()
	img, stats := raytracer.Render(func(rowsDone, totalRows int) {
		out <- Message{Type: "progress", Progress: &ProgressUpdate{Rows: rowsDone, Total: totalRows}}
	})

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		out <- errorMessage(fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	out <- Message{
		Type: "complete",
		Complete: &CompleteUpdate{
			ImageData: imageData,
			Width:     img.Width,
			Height:    img.Height,
			ElapsedMs: time.Since(startTime).Milliseconds(),
			Stats: Stats{
				TotalPixels:      stats.TotalPixels,
				TotalSamples:     stats.TotalSamples,
				Workers:          stats.Workers,
				SamplesPerSecond: stats.SamplesPerSecond(),
			},
			PrimitiveCount: sceneObj.GetPrimitiveCount(),
		},
	}
}

// writeMessages is the only goroutine that writes data frames to conn
func writeMessages(conn *websocket.Conn, out <-chan Message, done chan<- struct{}) {
	defer close(done)
	failed := false
	for msg := range out {
		if failed {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("Render socket write failed: %v", err)
			failed = true
		}
	}
}

func errorMessage(message string) Message {
	return Message{Type: "error", Error: message}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img *renderer.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, output.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
