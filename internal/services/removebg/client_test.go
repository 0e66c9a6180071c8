package removebg

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vizz0r/tic-tac-toe/internal/testutil"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context

	// per-request recording
	keysSeen []string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.keysSeen = nil
}

// newServer returns a test server whose behavior per key is decided by fn.
func (s *ClientSuite) newServer(fn func(key string, w http.ResponseWriter, r *http.Request)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-Api-Key")
		s.keysSeen = append(s.keysSeen, key)
		fn(key, w, r)
	}))
}

func (s *ClientSuite) newClient(server *httptest.Server, keys ...string) *Client {
	return NewWithClient(server.Client(), server.URL, keys, testutil.NopLogger())
}

func (s *ClientSuite) TestFirstKeySucceeds() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("processed"))
	})
	defer server.Close()

	result, err := s.newClient(server, "key-a", "key-b").Remove(s.ctx, []byte("original"))
	s.Require().NoError(err)

	s.False(result.Skipped)
	s.Equal([]byte("processed"), result.Data)
	s.Equal([]string{"key-a"}, s.keysSeen)
}

func (s *ClientSuite) TestFallsBackThroughFailingKeys() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		if key != "key-d" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":[{"title":"API Key has been revoked","code":"auth_failed"}]}`))
			return
		}
		_, _ = w.Write([]byte("processed-by-d"))
	})
	defer server.Close()

	result, err := s.newClient(server, "key-a", "key-b", "key-c", "key-d").Remove(s.ctx, []byte("original"))
	s.Require().NoError(err)

	s.False(result.Skipped)
	s.Equal([]byte("processed-by-d"), result.Data)
	s.Equal([]string{"key-a", "key-b", "key-c", "key-d"}, s.keysSeen)
}

func (s *ClientSuite) TestShortCircuitsOnSuccess() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("processed"))
	})
	defer server.Close()

	_, err := s.newClient(server, "key-a", "key-b", "key-c").Remove(s.ctx, []byte("original"))
	s.Require().NoError(err)

	s.Len(s.keysSeen, 1)
}

func (s *ClientSuite) TestQuotaExceededAdvancesToNextKey() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		if key == "key-a" {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"errors":[{"title":"Insufficient credits","code":"insufficient_credits"}]}`))
			return
		}
		_, _ = w.Write([]byte("processed"))
	})
	defer server.Close()

	result, err := s.newClient(server, "key-a", "key-b").Remove(s.ctx, []byte("original"))
	s.Require().NoError(err)

	s.False(result.Skipped)
	s.Equal([]string{"key-a", "key-b"}, s.keysSeen)
}

func (s *ClientSuite) TestExhaustionReturnsOriginalSkipped() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	original := []byte("original")
	result, err := s.newClient(server, "key-a", "key-b").Remove(s.ctx, original)
	s.Require().NoError(err)

	s.True(result.Skipped)
	s.Equal(original, result.Data)
	s.Len(s.keysSeen, 2)
}

func (s *ClientSuite) TestNoKeysConfiguredSkipsImmediately() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		s.Fail("no request expected")
	})
	defer server.Close()

	result, err := s.newClient(server).Remove(s.ctx, []byte("original"))
	s.Require().NoError(err)

	s.True(result.Skipped)
	s.Equal([]byte("original"), result.Data)
}

func (s *ClientSuite) TestSendsMultipartImageAndSizeAuto() {
	var gotSize string
	var gotImage []byte
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		s.Require().NoError(r.ParseMultipartForm(1 << 20))
		gotSize = r.FormValue("size")
		file, _, err := r.FormFile("image_file")
		s.Require().NoError(err)
		defer file.Close()
		gotImage, _ = io.ReadAll(file)
		_, _ = w.Write([]byte("processed"))
	})
	defer server.Close()

	_, err := s.newClient(server, "key-a").Remove(s.ctx, []byte("image-bytes"))
	s.Require().NoError(err)

	s.Equal("auto", gotSize)
	s.Equal([]byte("image-bytes"), gotImage)
}

func (s *ClientSuite) TestCancelledContextStopsChain() {
	server := s.newServer(func(key string, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.newClient(server, "key-a", "key-b").Remove(ctx, []byte("original"))
	s.Error(err)
}
