package genai

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

// fakeDoer records the last request and returns a canned response.
type fakeDoer struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
	payload []byte
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		f.payload, _ = io.ReadAll(req.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestClient(t *testing.T, doer *fakeDoer) *Client {
	t.Helper()
	client, err := NewClient("test-key", WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

const successBody = `{"candidates":[{"content":{"parts":[{"text":"Hi there"}]}}]}`

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		wantMime string
		wantData string
		wantOK   bool
	}{
		{"png", "data:image/png;base64,iVBORw0KGgo=", "image/png", "iVBORw0KGgo=", true},
		{"jpeg", "data:image/jpeg;base64,abc123", "image/jpeg", "abc123", true},
		{"not a data uri", "https://example.com/a.png", "", "", false},
		{"wrong scheme", "data:text/plain;base64,abc", "", "", false},
		{"missing payload", "data:image/png;base64,", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, data, ok := ParseDataURI(tt.uri)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if mime != tt.wantMime || data != tt.wantData {
				t.Errorf("got (%q, %q), want (%q, %q)", mime, data, tt.wantMime, tt.wantData)
			}
		})
	}
}

func TestGenerate_Success(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: successBody}
	client := newTestClient(t, doer)

	reply, err := client.Generate(context.Background(), "Hello", nil, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q, want %q", reply, "Hi there")
	}

	if got := doer.lastReq.Header.Get("x-goog-api-key"); got != "test-key" {
		t.Errorf("api key header = %q", got)
	}
	if !strings.Contains(doer.lastReq.URL.String(), models.DefaultModel+":generateContent") {
		t.Errorf("unexpected endpoint: %s", doer.lastReq.URL)
	}

	text := gjson.GetBytes(doer.payload, "contents.0.parts.0.text").String()
	if text != "Hello" {
		t.Errorf("prompt part = %q, want Hello", text)
	}
	temp := gjson.GetBytes(doer.payload, "generationConfig.temperature").Float()
	if temp != models.DefaultTemperature {
		t.Errorf("temperature = %v, want %v", temp, models.DefaultTemperature)
	}
}

func TestGenerate_HistoryPrecedesNewTurn(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: successBody}
	client := newTestClient(t, doer)

	history := []Turn{
		TextTurn(models.RoleUser, "first question"),
		TextTurn(models.RoleModel, "first answer"),
	}

	if _, err := client.Generate(context.Background(), "second question", history, ""); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	contents := gjson.GetBytes(doer.payload, "contents").Array()
	if len(contents) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(contents))
	}

	wantRoles := []string{"user", "model", "user"}
	wantTexts := []string{"first question", "first answer", "second question"}
	for i, turn := range contents {
		if turn.Get("role").String() != wantRoles[i] {
			t.Errorf("turn %d role = %q, want %q", i, turn.Get("role").String(), wantRoles[i])
		}
		if turn.Get("parts.0.text").String() != wantTexts[i] {
			t.Errorf("turn %d text = %q, want %q", i, turn.Get("parts.0.text").String(), wantTexts[i])
		}
	}
}

func TestGenerate_ImageBecomesInlineData(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: successBody}
	client := newTestClient(t, doer)

	if _, err := client.Generate(context.Background(), "", nil, "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parts := gjson.GetBytes(doer.payload, "contents.0.parts").Array()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts (image + text), got %d", len(parts))
	}

	if parts[0].Get("inlineData.mimeType").String() != "image/png" {
		t.Errorf("mimeType = %q", parts[0].Get("inlineData.mimeType").String())
	}
	if parts[0].Get("inlineData.data").String() != "AAAA" {
		t.Errorf("data = %q", parts[0].Get("inlineData.data").String())
	}

	// Empty prompt with an image substitutes the fixed default.
	if parts[1].Get("text").String() != models.DefaultImagePrompt {
		t.Errorf("text part = %q, want %q", parts[1].Get("text").String(), models.DefaultImagePrompt)
	}
}

func TestGenerate_MalformedImageSilentlyDropped(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: successBody}
	client := newTestClient(t, doer)

	reply, err := client.Generate(context.Background(), "look", nil, "not-a-data-uri")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "Hi there" {
		t.Errorf("reply = %q", reply)
	}

	parts := gjson.GetBytes(doer.payload, "contents.0.parts").Array()
	if len(parts) != 1 {
		t.Fatalf("expected image part to be dropped, got %d parts", len(parts))
	}
	if parts[0].Get("text").String() != "look" {
		t.Errorf("text part = %q", parts[0].Get("text").String())
	}
}

func TestGenerate_EmptyResponseFallsBack(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: `{"candidates":[{"content":{"parts":[]}}]}`}
	client := newTestClient(t, doer)

	reply, err := client.Generate(context.Background(), "hi", nil, "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != models.FallbackReply {
		t.Errorf("reply = %q, want fallback", reply)
	}
}

func TestGenerate_MultiPartReplyJoined(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"Hello, "},{"text":"world"}]}}]}`
	doer := &fakeDoer{status: http.StatusOK, body: body}
	client := newTestClient(t, doer)

	reply, err := client.Generate(context.Background(), "hi", nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Hello, world" {
		t.Errorf("reply = %q", reply)
	}
}

func TestGenerate_HTTPError(t *testing.T) {
	doer := &fakeDoer{status: http.StatusTooManyRequests, body: `{"error":{"message":"quota exceeded"}}`}
	client := newTestClient(t, doer)

	_, err := client.Generate(context.Background(), "hi", nil, "")
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *apierrors.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if genErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d", genErr.StatusCode)
	}
	if !strings.Contains(genErr.Message, "quota exceeded") {
		t.Errorf("Message = %q", genErr.Message)
	}
}

func TestGenerate_TransportError(t *testing.T) {
	doer := &fakeDoer{err: errors.New("connection refused")}
	client := newTestClient(t, doer)

	_, err := client.Generate(context.Background(), "hi", nil, "")
	if !apierrors.IsGenerationError(err) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGenerate_NoAPIKey(t *testing.T) {
	client, err := NewClient("", WithHTTPClient(&fakeDoer{}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Generate(context.Background(), "hi", nil, ""); !errors.Is(err, apierrors.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestHistoryFromMessages(t *testing.T) {
	msgs := []models.Message{
		models.NewUserMessage("q1", "data:image/png;base64,AAAA"),
		models.NewModelMessage("a1"),
	}

	turns := HistoryFromMessages(msgs)
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != "user" || turns[1].Role != "model" {
		t.Error("roles not preserved")
	}
	// Earlier images are not resent; history is text only.
	if turns[0].Parts[0].InlineData != nil {
		t.Error("history turn carried inline data")
	}
	if turns[0].Parts[0].Text != "q1" {
		t.Errorf("text = %q", turns[0].Parts[0].Text)
	}
}

func TestClientOptions(t *testing.T) {
	client, err := NewClient("k",
		WithHTTPClient(&fakeDoer{}),
		WithModel("other-model"),
		WithBaseURL("https://proxy.example.com"),
	)
	if err != nil {
		t.Fatal(err)
	}

	if client.Model() != "other-model" {
		t.Errorf("Model() = %q", client.Model())
	}
	want := "https://proxy.example.com/v1beta/models/other-model:generateContent"
	if client.endpoint() != want {
		t.Errorf("endpoint = %q, want %q", client.endpoint(), want)
	}

	// Empty option values keep the defaults.
	client2, _ := NewClient("k", WithHTTPClient(&fakeDoer{}), WithModel(""), WithBaseURL(""))
	if client2.Model() != models.DefaultModel {
		t.Errorf("Model() = %q, want default", client2.Model())
	}
}
