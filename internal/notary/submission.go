package notary

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/google/uuid"
)

// Submission is what notarytool reports about a processed upload.
type Submission struct {
	ID     uuid.UUID
	Status string
}

// ParseSubmission extracts the submission id and final status from
// notarytool's human-readable output. The last "id:" and "status:" lines win,
// since --wait prints the id before the verdict.
func ParseSubmission(stdout []byte) (Submission, bool) {
	var sub Submission
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	// A line can never be longer than the whole output.
	scanner.Buffer(make([]byte, 0, 64*1024), len(stdout)+1)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "id":
			id, err := uuid.Parse(value)
			if err != nil {
				continue
			}
			sub.ID = id
			found = true
		case "status":
			sub.Status = value
		}
	}
	if err := scanner.Err(); err != nil {
		return Submission{}, false
	}
	return sub, found
}
