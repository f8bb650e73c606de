package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"surfceylon.app/server/internal/http/handler"
	"surfceylon.app/server/internal/http/router"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/service"
)

var _ = Describe("MessageHandler", func() {
	var (
		engine *gin.Engine
		msgs   *mockMessageService
		convs  *mockConversationService
	)

	postJSON := func(path string, payload any) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		engine = gin.New()
		msgs = &mockMessageService{}
		convs = &mockConversationService{}
		router.MessageRouter(engine.Group("/api/messages"),
			handler.NewConversationHandler(convs),
			handler.NewMessageHandler(msgs))
	})

	Describe("Send", func() {
		It("returns 201 with the stored message", func() {
			msgs.sendFn = func(_ context.Context, _, conversationID int64, body string) (*model.Message, error) {
				return &model.Message{ID: 99, ConversationID: conversationID, Body: body, Seq: 4}, nil
			}

			w := postJSON("/api/messages/42", map[string]string{"body": "hello"})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["seq"]).To(BeEquivalentTo(4))
			Expect(resp["id"]).To(Equal("99"))
		})

		It("returns 400 when the body field is missing", func() {
			w := postJSON("/api/messages/42", map[string]string{})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps empty bodies to 400", func() {
			msgs.sendFn = func(_ context.Context, _, _ int64, _ string) (*model.Message, error) {
				return nil, service.ErrEmptyBody
			}

			w := postJSON("/api/messages/42", map[string]string{"body": "   "})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("distinguishes 404 from 403", func() {
			msgs.sendFn = func(_ context.Context, _, _ int64, _ string) (*model.Message, error) {
				return nil, service.ErrConversationNotFound
			}
			w := postJSON("/api/messages/42", map[string]string{"body": "hi"})
			Expect(w.Code).To(Equal(http.StatusNotFound))

			msgs.sendFn = func(_ context.Context, _, _ int64, _ string) (*model.Message, error) {
				return nil, service.ErrNotAMember
			}
			w = postJSON("/api/messages/42", map[string]string{"body": "hi"})
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("List", func() {
		It("returns the page envelope", func() {
			msgs.listFn = func(_ context.Context, _, conversationID int64, _ string, _ int) (service.Page[model.Message], error) {
				return service.Page[model.Message]{
					Items:      []model.Message{{ID: 5, ConversationID: conversationID, Seq: 2}},
					NextCursor: "next",
				}, nil
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/42", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["items"]).To(HaveLen(1))
			Expect(resp["nextCursor"]).To(Equal("next"))
		})
	})

	Describe("Open", func() {
		It("returns 201 with the resolved conversation", func() {
			convs.openFn = func(_ context.Context, _ int64, memberIDs []int64) (*model.Conversation, error) {
				key := model.DirectKey(1, memberIDs[0])
				return &model.Conversation{ID: 7, DirectKey: &key, MemberIDs: []int64{1, memberIDs[0]}}, nil
			}

			w := postJSON("/api/messages/conversations", map[string]any{"member_ids": []int64{2}})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["direct"]).To(BeTrue())
			Expect(resp["id"]).To(Equal("7"))
		})

		It("returns 400 without member ids", func() {
			w := postJSON("/api/messages/conversations", map[string]any{})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("MarkRead", func() {
		It("returns the resulting cursor", func() {
			convs.markReadFn = func(_ context.Context, _, _, seq int64) (int64, error) {
				return seq, nil
			}

			w := postJSON("/api/messages/42/read", map[string]int64{"seq": 10})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["seq"]).To(BeEquivalentTo(10))
		})

		It("echoes the unchanged cursor on a backward move", func() {
			convs.markReadFn = func(_ context.Context, _, _, _ int64) (int64, error) {
				return 7, nil
			}

			w := postJSON("/api/messages/42/read", map[string]int64{"seq": 3})

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["seq"]).To(BeEquivalentTo(7))
		})

		It("maps a seq past the newest message to 400", func() {
			convs.markReadFn = func(_ context.Context, _, _, _ int64) (int64, error) {
				return 0, service.ErrSeqBeyondMax
			}

			w := postJSON("/api/messages/42/read", map[string]int64{"seq": 10})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("UnreadCount", func() {
		It("returns the count", func() {
			msgs.unreadCountFn = func(_ context.Context, _, _ int64) (int64, error) {
				return 3, nil
			}

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/messages/42/unread", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["unread"]).To(BeEquivalentTo(3))
		})
	})
})
