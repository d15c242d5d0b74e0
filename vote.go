package newsdesk

import (
	"io"
)

// VotePayload is the body of a request changing the votes of an article. IncVotes is
// added to the current count and may be negative.
type VotePayload struct {
	IncVotes int `json:"inc_votes"`
}

// DecodeVotePayload requires inc_votes to be an integer. An empty object is rejected
// rather than treated as a no-op.
func DecodeVotePayload(r io.Reader) (*VotePayload, error) {
	p := VotePayload{}
	err := decodePayload(r, &p, "inc_votes")
	if err != nil {
		return nil, err
	}

	return &p, nil
}
