package gateway

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeSSE writes one payload as a Server-Sent Events data frame. Frames
// carry their own type tag in the JSON, so no event name is attached.
func writeSSE(w io.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return nil
}
