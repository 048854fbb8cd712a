package voting

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// ErrAlreadyVoted is returned by storage when a voter's email is already
// present in an instance's voter set. Each voter counts once per block
// instance; the voter list is append-only.
var ErrAlreadyVoted = errors.New("already voted for this item")

// instanceIDPattern matches the block instance ids the editor generates
// (block-<postID>-<hash>), and more generally any id built from
// alphanumerics and hyphens.
var instanceIDPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// VoteRequest is one vote submission for a content-block instance.
type VoteRequest struct {
	PostID     int    `json:"postId"`
	InstanceID string `json:"instanceId"`
	Email      string `json:"email"`
}

// Validate checks the submission shape. The email address is the
// idempotency key, so it must parse.
func (r *VoteRequest) Validate() error {
	if r.PostID <= 0 {
		return fmt.Errorf("postId must be a positive integer")
	}
	if r.InstanceID == "" {
		return fmt.Errorf("instanceId cannot be empty")
	}
	if !instanceIDPattern.MatchString(r.InstanceID) {
		return fmt.Errorf("instanceId contains invalid characters")
	}
	if r.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil {
		return fmt.Errorf("invalid email address")
	}
	r.Email = strings.ToLower(addr.Address)
	return nil
}

// VoteResult is the response for both vote submission and count reads.
type VoteResult struct {
	VoteCount int64 `json:"voteCount"`
}
