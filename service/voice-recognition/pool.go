package voicerecognition

import (
	"doc-agent-backend/config"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

const poolSize = 4

type WSConnection struct {
	conn *websocket.Conn
}

// ConnectionPool ASR服务的WebSocket连接池，复用连接以省去握手开销
type ConnectionPool struct {
	connections chan *WSConnection
}

var wsConnectionPool = &ConnectionPool{
	connections: make(chan *WSConnection, poolSize),
}

// Get 优先复用空闲连接，没有则新建
func (p *ConnectionPool) Get() (*WSConnection, error) {
	select {
	case c := <-p.connections:
		return c, nil
	default:
		return p.dial()
	}
}

// Put 归还连接，池满时直接关闭
func (p *ConnectionPool) Put(c *WSConnection) {
	if c == nil || c.conn == nil {
		return
	}

	select {
	case p.connections <- c:
	default:
		c.conn.Close()
	}
}

// Discard 丢弃出错的连接，不再归还池中
func (p *ConnectionPool) Discard(c *WSConnection) {
	if c != nil && c.conn != nil {
		c.conn.Close()
	}
}

func (p *ConnectionPool) dial() (*WSConnection, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+config.Cfg.ASR.APIKey)

	conn, _, err := websocket.DefaultDialer.Dial(config.Cfg.ASR.Endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ASR endpoint: %v", err)
	}

	return &WSConnection{conn: conn}, nil
}
