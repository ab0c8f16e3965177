package form

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/customform/core"
)

// test doubles

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

// recordLogger captures Warn/Error messages; everything else is a no-op.
type recordLogger struct {
	nopLogger
	mu     sync.Mutex
	warns  []string
	errors []string
}

func (l *recordLogger) Warn(msg string, _ ...interface{}) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func (l *recordLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, msg)
	l.mu.Unlock()
}

type mailRecorder struct {
	mu   sync.Mutex
	sent []*core.EmailMessage
}

func (r *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, msg := range messages {
		_ = msg.Render()
		r.sent = append(r.sent, msg)
	}
}

func testConf() *core.Config {
	return &core.Config{
		AppName:      "Customform",
		SupportEmail: mail.Address{Name: "Customform Support", Address: "support@localhost"},
		Dispatch:     core.DispatchConfig{Timeout: 2 * time.Second},
	}
}

func TestDispatchPostsFormEncodedPayload(t *testing.T) {
	var (
		gotContentType string
		gotBody        url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := ioutil.ReadAll(r.Body)
		gotBody, _ = url.ParseQuery(string(body))
	}))
	defer srv.Close()

	mails := &mailRecorder{}
	d := NewDispatcher(testConf(), mails, nopLogger{})

	normalized := NormalizedSubmission{
		"name":      "Ada",
		"subscribe": float64(1),
		"interests": []interface{}{"0", "2"},
	}
	outcome := d.Dispatch(context.Background(), Target{URL: srv.URL}, normalized, nil)

	assert.True(t, outcome.Posted)
	assert.False(t, outcome.Emailed)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "Ada", gotBody.Get("name"))
	assert.Equal(t, "1", gotBody.Get("subscribe"))
	assert.Equal(t, []string{"0", "2"}, gotBody["interests"])
	assert.Empty(t, mails.sent)
}

func TestDispatchSkipsEmptyURL(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	d := NewDispatcher(testConf(), &mailRecorder{}, nopLogger{})
	outcome := d.Dispatch(context.Background(), Target{URL: ""}, NormalizedSubmission{"name": "Ada"}, nil)

	assert.False(t, outcome.Posted)
	assert.False(t, called)
}

func TestDispatchSwallowsDeliveryFailures(t *testing.T) {
	// non-2xx response
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	logs := &recordLogger{}
	d := NewDispatcher(testConf(), &mailRecorder{}, logs)

	outcome := d.Dispatch(context.Background(), Target{URL: srv.URL}, NormalizedSubmission{}, nil)
	assert.True(t, outcome.Posted) // attempt issued; not an ack
	if assert.Len(t, logs.warns, 1) {
		assert.Contains(t, logs.warns[0], "status 500")
	}

	// unreachable endpoint
	srv.Close()
	outcome = d.Dispatch(context.Background(), Target{URL: srv.URL}, NormalizedSubmission{}, nil)
	assert.True(t, outcome.Posted)
	assert.Len(t, logs.errors, 1)
}

func TestDispatchEmailsReport(t *testing.T) {
	mails := &mailRecorder{}
	d := NewDispatcher(testConf(), mails, nopLogger{})

	report := Report{{Label: "Name", Value: "Ada"}, {Label: "Subscribe", Value: "Yes"}}
	target := Target{
		SendEmail: true,
		EmailTo:   "admissions@example.com",
		Course:    "CS101",
		FormName:  "Enrolment",
	}
	outcome := d.Dispatch(context.Background(), target, NormalizedSubmission{}, report)

	assert.False(t, outcome.Posted)
	assert.True(t, outcome.Emailed)
	if len(mails.sent) != 1 {
		t.Fatalf("len(mails.sent) = %d; want 1", len(mails.sent))
	}
	msg := mails.sent[0]
	assert.Equal(t, "admissions@example.com", msg.To[0].Address)
	assert.Contains(t, msg.Subject, "CS101")
	assert.Contains(t, msg.HTMLContent, "<p><strong>Name</strong>: Ada</p>")
	assert.Contains(t, msg.TextContent, "Name: Ada") // plain-text alternative derived from HTML
}

func TestDispatchEmailFallsBackToSupport(t *testing.T) {
	mails := &mailRecorder{}
	d := NewDispatcher(testConf(), mails, nopLogger{})

	d.Dispatch(context.Background(), Target{SendEmail: true}, NormalizedSubmission{}, Report{{Label: "A", Value: "B"}})

	if len(mails.sent) != 1 {
		t.Fatalf("len(mails.sent) = %d; want 1", len(mails.sent))
	}
	assert.Equal(t, "support@localhost", mails.sent[0].To[0].Address)
}
