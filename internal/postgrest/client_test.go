package postgrest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/mohanbhogavarapu07/vsm-backend/internal"
)

func TestPostgrest(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Postgrest Client Suite")
}

var _ = ginkgo.Describe("Client", func() {
	var (
		server   *httptest.Server
		client   *Client
		lastReq  *http.Request
		lastBody []byte
		respond  func(w http.ResponseWriter)
	)

	quietLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		respond = func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		}
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastReq = r
			lastBody, _ = io.ReadAll(r.Body)
			respond(w)
		}))
		client = NewClient(Config{URL: server.URL, APIKey: "service-key", Timeout: 2 * time.Second}, quietLogger)
	})

	ginkgo.AfterEach(func() {
		server.Close()
	})

	ginkgo.Describe("Select", func() {
		ginkgo.It("builds the PostgREST path and query string", func() {
			_, err := client.Select(context.Background(), "tasks", Query{
				Columns: "task_id,status",
				Filters: []Filter{Eq("sprint_id", 7)},
				Order:   []string{"task_id"},
				Limit:   50,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(lastReq.Method).To(gomega.Equal(http.MethodGet))
			gomega.Expect(lastReq.URL.Path).To(gomega.Equal("/rest/v1/tasks"))
			q := lastReq.URL.Query()
			gomega.Expect(q.Get("select")).To(gomega.Equal("task_id,status"))
			gomega.Expect(q.Get("sprint_id")).To(gomega.Equal("eq.7"))
			gomega.Expect(q.Get("order")).To(gomega.Equal("task_id.asc"))
			gomega.Expect(q.Get("limit")).To(gomega.Equal("50"))
		})

		ginkgo.It("keeps an explicit descending order suffix", func() {
			_, err := client.Select(context.Background(), "chat_logs", Query{
				Order: []string{"created_at.desc", "chat_log_id"},
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(lastReq.URL.Query().Get("order")).To(gomega.Equal("created_at.desc,chat_log_id.asc"))
		})

		ginkgo.It("sends the api key on both auth headers", func() {
			_, err := client.Select(context.Background(), "users", Query{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(lastReq.Header.Get("apikey")).To(gomega.Equal("service-key"))
			gomega.Expect(lastReq.Header.Get("Authorization")).To(gomega.Equal("Bearer service-key"))
		})
	})

	ginkgo.Describe("Insert", func() {
		ginkgo.It("posts the row and asks for the representation back", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`[{"user_id": 1}]`))
			}

			_, err := client.Insert(context.Background(), "users", map[string]any{"email": "a@example.com"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(lastReq.Method).To(gomega.Equal(http.MethodPost))
			gomega.Expect(lastReq.Header.Get("Prefer")).To(gomega.Equal("return=representation"))
			gomega.Expect(lastReq.Header.Get("Content-Type")).To(gomega.Equal("application/json"))
			gomega.Expect(string(lastBody)).To(gomega.MatchJSON(`{"email": "a@example.com"}`))
		})

		ginkgo.It("maps a unique violation to a conflict", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"code": "23505", "message": "duplicate key"}`))
			}

			_, err := client.Insert(context.Background(), "users", map[string]any{"email": "dup@example.com"})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
		})

		ginkgo.It("maps other upstream failures to external errors", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message": "boom"}`))
			}

			_, err := client.Insert(context.Background(), "users", map[string]any{})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeExternal))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("patches only the filtered rows", func() {
			_, err := client.Update(context.Background(), "tasks", map[string]any{"status": "DONE"}, Eq("task_id", 5))

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(lastReq.Method).To(gomega.Equal(http.MethodPatch))
			gomega.Expect(lastReq.URL.Query().Get("task_id")).To(gomega.Equal("eq.5"))
		})
	})

	ginkgo.Describe("Exists", func() {
		ginkgo.It("is true when a row matches", func() {
			respond = func(w http.ResponseWriter) {
				w.Write([]byte(`[{"user_id": 3}]`))
			}

			gomega.Expect(client.Exists(context.Background(), "users", "user_id", 3)).To(gomega.BeTrue())
			gomega.Expect(lastReq.URL.Query().Get("limit")).To(gomega.Equal("1"))
		})

		ginkgo.It("reads upstream failure as absence", func() {
			respond = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
			}

			gomega.Expect(client.Exists(context.Background(), "users", "user_id", 3)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("DecodeOne", func() {
		ginkgo.It("answers not found for an empty array", func() {
			type row struct {
				ID int64 `json:"task_id"`
			}
			_, err := DecodeOne[row](json.RawMessage(`[]`), "Task", internal.ErrCodeTaskNotFound)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
			gomega.Expect(appErr.Message).To(gomega.Equal("Task not found"))
		})

		ginkgo.It("returns the first row otherwise", func() {
			type row struct {
				ID int64 `json:"task_id"`
			}
			got, err := DecodeOne[row](json.RawMessage(`[{"task_id": 9}, {"task_id": 10}]`), "Task", internal.ErrCodeTaskNotFound)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(got.ID).To(gomega.Equal(int64(9)))
		})
	})

	ginkgo.Describe("In", func() {
		ginkgo.It("renders the id set in PostgREST syntax", func() {
			f := In("sprint_id", []int64{1, 2, 3})

			gomega.Expect(f.Op).To(gomega.Equal("in"))
			gomega.Expect(f.Value).To(gomega.Equal("(1,2,3)"))
		})
	})
})
