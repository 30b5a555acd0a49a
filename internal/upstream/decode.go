package upstream

import (
	"encoding/json"
	"fmt"

	"edu_analytics_backend/internal/schema"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	activitySchema = schema.MustCompile("activity-record", schema.ActivityRecord)
	progressSchema = schema.MustCompile("topic-progress", schema.TopicProgress)
)

// envelope 上游统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// elements returns the array carried by body, which is either a bare JSON
// array or an envelope whose data field is one.
func elements(body []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.Code >= 400 {
		return nil, fmt.Errorf("upstream error %d: %s", env.Code, env.Message)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return []json.RawMessage{}, nil
	}
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("decode response data: %w", err)
	}
	return items, nil
}

// decodeList keeps the elements that pass the schema check and decode into T.
// It returns the number of dropped elements.
func decodeList[T any](body []byte, s *jsonschema.Schema) ([]T, int, error) {
	items, err := elements(body)
	if err != nil {
		return nil, 0, err
	}

	out := make([]T, 0, len(items))
	dropped := 0
	for _, raw := range items {
		if err := schema.ValidateJSON(s, raw); err != nil {
			dropped++
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			dropped++
			continue
		}
		out = append(out, v)
	}
	return out, dropped, nil
}
