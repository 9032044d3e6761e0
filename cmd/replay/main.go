// Replay streams a recorded landmark file into a running FitCoach server,
// one frame per line, and prints the per-frame outcomes. Useful for demos
// and for exercising the ingest path without a camera.
//
// The input file is JSONL: each line is {"landmarks": {"LEFT_HIP": {"x": ..,
// "y": ..}, ...}}.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fitvision/go-fitcoach/internal/httpc"
)

func main() {
	server := flag.String("server", "ws://localhost:8090", "FitCoach server base URL")
	file := flag.String("file", "", "JSONL landmark recording to replay")
	exercise := flag.String("exercise", "", "Exercise to select before replay (uses the REST API host)")
	fps := flag.Int("fps", 30, "Frames per second to replay at")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: replay -file frames.jsonl [-server ws://host:port] [-exercise squat]")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", *file, err)
		os.Exit(1)
	}
	defer f.Close()

	if *exercise != "" {
		if err := selectExercise(*server, *exercise); err != nil {
			fmt.Fprintf(os.Stderr, "select %q: %v\n", *exercise, err)
			os.Exit(1)
		}
		fmt.Printf("replaying %s as %q\n", *file, *exercise)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*server+"/ws/ingest", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *server, err)
		os.Exit(1)
	}
	defer conn.Close()

	interval := time.Second / time.Duration(*fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var sent, reps int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		<-ticker.C
		if err := conn.WriteMessage(websocket.TextMessage, line); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
		sent++

		_, resp, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			os.Exit(1)
		}

		var result struct {
			Angle    float64 `json:"angle"`
			Phase    string  `json:"phase"`
			Reps     int     `json:"reps"`
			Counted  bool    `json:"counted"`
			Feedback string  `json:"feedback"`
			Error    string  `json:"error"`
			Capped   bool    `json:"capped"`
		}
		if err := json.Unmarshal(resp, &result); err != nil {
			fmt.Fprintf(os.Stderr, "bad response %s: %v\n", resp, err)
			continue
		}

		if result.Counted {
			fmt.Printf("rep %d  (%.0f°)  %s\n", result.Reps, result.Angle, result.Feedback)
		}
		if result.Error != "" {
			fmt.Printf("frame %d: %s — %s\n", sent, result.Error, result.Feedback)
		}
		if result.Capped {
			fmt.Println("session cap reached, stopping replay")
			break
		}
		reps = result.Reps
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "scan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("done: %d frames sent, %d reps counted\n", sent, reps)
}

// selectExercise calls the server's REST API to select the exercise before
// the replay starts. The websocket base URL is rewritten to HTTP.
func selectExercise(server, id string) error {
	base := strings.Replace(server, "ws://", "http://", 1)
	base = strings.Replace(base, "wss://", "https://", 1)

	body, _ := json.Marshal(map[string]string{"id": id})
	resp, err := httpc.Client.Post(base+"/api/exercises/select", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
