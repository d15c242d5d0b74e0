package newsdesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
)

const (
	TitleMaxLength       = 100
	CommentBodyMaxLength = 500
)

var (
	errMissingFields = errors.New("missing fields")
	errEmptyField    = errors.New("must not be empty")
	errTooLong       = errors.New("too long")
)

var jsonNumberType = reflect.TypeOf(json.Number(""))

// rejectNumberAsString keeps mapstructure from turning a JSON number into a string field.
func rejectNumberAsString(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from == jsonNumberType && to.Kind() == reflect.String {
		return nil, fmt.Errorf("expected a string, got a number")
	}
	return data, nil
}

// decodePayload reads a JSON object from r into dst, using dst's json tags. Keys listed
// in required must be present and not null, unknown keys are ignored.
func decodePayload(r io.Reader, dst interface{}, required ...string) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return InvalidPayload(err)
	}

	var missing []string
	for _, key := range required {
		if v, ok := raw[key]; !ok || v == nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return InvalidPayload(errMissingFields, missing...)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     dst,
		DecodeHook: rejectNumberAsString,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return InvalidPayload(err)
	}

	return nil
}

// checkText validates a required text field, maxLength being counted in characters.
// A zero maxLength means no limit.
func checkText(field string, value string, maxLength int) error {
	if strings.TrimSpace(value) == "" {
		return InvalidPayload(errEmptyField, field)
	}
	if maxLength > 0 && utf8.RuneCountInString(value) > maxLength {
		return InvalidPayload(errTooLong, field)
	}
	return nil
}

// ArticlePayload is the body of a request creating an article.
type ArticlePayload struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Topic  string `json:"topic"`
}

func DecodeArticlePayload(r io.Reader) (*ArticlePayload, error) {
	p := ArticlePayload{}
	err := decodePayload(r, &p, "author", "title", "body", "topic")
	if err != nil {
		return nil, err
	}

	for _, err := range []error{
		checkText("author", p.Author, 0),
		checkText("title", p.Title, TitleMaxLength),
		checkText("body", p.Body, 0),
		checkText("topic", p.Topic, 0),
	} {
		if err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// CommentPayload is the body of a request posting a comment on an article.
type CommentPayload struct {
	Username string `json:"username"`
	Body     string `json:"body"`
}

func DecodeCommentPayload(r io.Reader) (*CommentPayload, error) {
	p := CommentPayload{}
	err := decodePayload(r, &p, "username", "body")
	if err != nil {
		return nil, err
	}

	if err := checkText("username", p.Username, 0); err != nil {
		return nil, err
	}
	if err := checkText("body", p.Body, CommentBodyMaxLength); err != nil {
		return nil, err
	}

	return &p, nil
}

// TopicPayload is the body of a request creating a topic.
type TopicPayload struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func DecodeTopicPayload(r io.Reader) (*TopicPayload, error) {
	p := TopicPayload{}
	err := decodePayload(r, &p, "slug", "description")
	if err != nil {
		return nil, err
	}

	if err := checkText("slug", p.Slug, 0); err != nil {
		return nil, err
	}
	if err := checkText("description", p.Description, 0); err != nil {
		return nil, err
	}

	return &p, nil
}
