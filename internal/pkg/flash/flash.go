package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie that carries pending messages to the next request
const CookieName = "flash"

// Message types
const (
	TypeStatus  = "status"
	TypeWarning = "warning"
	TypeError   = "error"
)

// Message is a one-time message shown on the next rendered page
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Add queues a message for the next request. Messages added earlier in the
// same request are kept.
func Add(c *gin.Context, msgType, text string) {
	messages := pending(c)
	messages = append(messages, Message{Type: msgType, Text: text})
	c.Set(CookieName, messages)
	write(c, messages, 0)
}

// Pop returns and clears the queued messages
func Pop(c *gin.Context) []Message {
	messages := pending(c)
	if len(messages) > 0 {
		c.Set(CookieName, []Message(nil))
		write(c, nil, -1)
	}
	return messages
}

func pending(c *gin.Context) []Message {
	if v, ok := c.Get(CookieName); ok {
		messages, _ := v.([]Message)
		return messages
	}

	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var messages []Message
	if err := json.Unmarshal(decoded, &messages); err != nil {
		return nil
	}
	return messages
}

func write(c *gin.Context, messages []Message, maxAge int) {
	value := ""
	if len(messages) > 0 {
		encoded, err := json.Marshal(messages)
		if err != nil {
			return
		}
		value = base64.RawURLEncoding.EncodeToString(encoded)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", false, true)
}
