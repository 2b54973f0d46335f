// Package voicerecognition 对接ASR服务的实时语音识别，
// 协议为 run-task / finish-task 双工WebSocket交互
package voicerecognition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	modelName  = "paraformer-realtime-v2"
	sampleRate = 16000

	// 每次发送的音频分片大小
	audioChunkSize = 1024

	taskStartTimeout = 10 * time.Second
)

type Header struct {
	Action       string `json:"action"`
	TaskID       string `json:"task_id"`
	Streaming    string `json:"streaming"`
	Event        string `json:"event"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type Output struct {
	Sentence struct {
		BeginTime   int64  `json:"begin_time"`
		EndTime     *int64 `json:"end_time"`
		Text        string `json:"text"`
		SentenceEnd bool   `json:"sentence_end"`
	} `json:"sentence"`
}

type Payload struct {
	TaskGroup  string `json:"task_group"`
	Task       string `json:"task"`
	Function   string `json:"function"`
	Model      string `json:"model"`
	Parameters Params `json:"parameters"`
	Input      Input  `json:"input"`
	Output     Output `json:"output,omitempty"`
}

type Params struct {
	Format        string   `json:"format"`
	SampleRate    int      `json:"sample_rate"`
	LanguageHints []string `json:"language_hints"`
}

type Input struct {
}

type Event struct {
	Header  Header  `json:"header"`
	Payload Payload `json:"payload"`
}

// Transcribe 识别音频文件并返回文本
func Transcribe(audioFile *multipart.FileHeader) (string, error) {
	conn, err := wsConnectionPool.Get()
	if err != nil {
		return "", fmt.Errorf("failed to get WebSocket connection: %v", err)
	}

	text, err := transcribeOnConn(conn, audioFile)
	if err != nil {
		// 交互中途出错的连接状态不可知，不再复用
		wsConnectionPool.Discard(conn)
		return "", err
	}

	wsConnectionPool.Put(conn)
	return text, nil
}

func transcribeOnConn(conn *WSConnection, audioFile *multipart.FileHeader) (string, error) {
	taskStarted := make(chan struct{})
	taskDone := make(chan error, 1)
	var result strings.Builder

	// 异步接收WebSocket消息
	go receiveResults(conn, taskStarted, taskDone, &result)

	taskID, err := sendRunTaskCmd(conn)
	if err != nil {
		return "", fmt.Errorf("failed to send run-task cmd: %v", err)
	}

	select {
	case <-taskStarted:
	case <-time.After(taskStartTimeout):
		return "", errors.New("timeout waiting for task-started")
	}

	if err := sendAudioData(conn, audioFile); err != nil {
		return "", fmt.Errorf("failed to send audio data: %v", err)
	}

	if err := sendFinishTaskCmd(conn, taskID); err != nil {
		return "", fmt.Errorf("failed to send finish-task cmd: %v", err)
	}

	if err := <-taskDone; err != nil {
		return "", err
	}

	return result.String(), nil
}

func receiveResults(conn *WSConnection, taskStarted chan<- struct{}, taskDone chan<- error, result *strings.Builder) {
	for {
		_, message, err := conn.conn.ReadMessage()
		if err != nil {
			taskDone <- fmt.Errorf("failed to read server message: %v", err)
			return
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			slog.Error("Failed to parse ASR event", "err", err)
			continue
		}

		switch event.Header.Event {
		case "task-started":
			close(taskStarted)
		case "result-generated":
			// 只收集识别完整的句子
			if event.Payload.Output.Sentence.SentenceEnd {
				result.WriteString(event.Payload.Output.Sentence.Text)
			}
		case "task-finished":
			taskDone <- nil
			return
		case "task-failed":
			taskDone <- taskFailedError(event)
			return
		default:
			slog.Info("Unexpected ASR event", "event", event.Header.Event)
		}
	}
}

func taskFailedError(event Event) error {
	if event.Header.ErrorMessage != "" {
		return fmt.Errorf("recognition task failed: %s (%s)",
			event.Header.ErrorMessage, event.Header.ErrorCode)
	}
	return errors.New("recognition task failed due to unknown reason")
}

func sendRunTaskCmd(conn *WSConnection) (string, error) {
	taskID := uuid.New().String()
	runTaskCmd := Event{
		Header: Header{
			Action:    "run-task",
			TaskID:    taskID,
			Streaming: "duplex",
		},
		Payload: Payload{
			TaskGroup: "audio",
			Task:      "asr",
			Function:  "recognition",
			Model:     modelName,
			Parameters: Params{
				Format:     "wav",
				SampleRate: sampleRate,
			},
			Input: Input{},
		},
	}

	cmdJSON, err := json.Marshal(runTaskCmd)
	if err != nil {
		return "", err
	}

	if err := conn.conn.WriteMessage(websocket.TextMessage, cmdJSON); err != nil {
		return "", err
	}

	return taskID, nil
}

func sendAudioData(conn *WSConnection, audioFile *multipart.FileHeader) error {
	file, err := audioFile.Open()
	if err != nil {
		return fmt.Errorf("failed to open audio file: %v", err)
	}
	defer file.Close()

	buf := make([]byte, audioChunkSize)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			if err := conn.conn.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
				return fmt.Errorf("failed to send audio chunk: %v", err)
			}
		}

		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("error reading audio file: %v", err)
		}
	}
}

func sendFinishTaskCmd(conn *WSConnection, taskID string) error {
	finishTaskCmd := Event{
		Header: Header{
			Action:    "finish-task",
			TaskID:    taskID,
			Streaming: "duplex",
		},
		Payload: Payload{
			Input: Input{},
		},
	}

	cmdJSON, err := json.Marshal(finishTaskCmd)
	if err != nil {
		return err
	}

	return conn.conn.WriteMessage(websocket.TextMessage, cmdJSON)
}
