package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/services"
	"shoe-assistant-api/pkg/lambda"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

type fakeOrderService struct {
	got  *services.OrderRequest
	text string
	err  error
}

func (f *fakeOrderService) HandleOrder(ctx context.Context, req *services.OrderRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

type fakeRecommendationService struct {
	got  *services.RecommendationRequest
	text string
	err  error
}

func (f *fakeRecommendationService) Recommend(ctx context.Context, req *services.RecommendationRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

type fakeRegistrationService struct {
	got  *services.RegistrationRequest
	text string
	err  error
}

func (f *fakeRegistrationService) Register(ctx context.Context, req *services.RegistrationRequest) (string, error) {
	f.got = req
	return f.text, f.err
}

type fakeAgentService struct {
	got  *services.ConversationRequest
	resp *services.ConversationResponse
	err  error
}

func (f *fakeAgentService) Converse(ctx context.Context, req *services.ConversationRequest) (*services.ConversationResponse, error) {
	f.got = req
	return f.resp, f.err
}

func orderEvent(params ...lambda.Parameter) *lambda.ActionGroupRequest {
	return &lambda.ActionGroupRequest{
		MessageVersion: "1.0",
		ActionGroup:    "OrderActionGroup",
		Function:       "handle_order",
		Parameters:     params,
	}
}

func TestOrderHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "success",
			wantStatus: 0,
			wantText:   "Order placed successfully for Shoe ID 3.",
		},
		{
			name:       "validation",
			err:        services.ValidationError("handle order", "customer_id is required"),
			wantStatus: http.StatusBadRequest,
			wantText:   "Error: customer_id is required",
		},
		{
			name:       "invalid operation",
			err:        services.InvalidOperationError("handle order", "Invalid operation or missing parameters."),
			wantStatus: http.StatusInternalServerError,
			wantText:   "Error: Invalid operation or missing parameters.",
		},
		{
			name:       "not found",
			err:        services.NotFoundError("handle order", "No customer found with name Ravi", nil),
			wantStatus: http.StatusInternalServerError,
			wantText:   "Error: No customer found with name Ravi",
		},
		{
			name:       "infrastructure detail is hidden",
			err:        services.InfraError("handle order", errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantText:   internalErrorText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeOrderService{text: "Order placed successfully for Shoe ID 3.", err: tt.err}
			h := NewOrderHandler(svc, quietLogger())

			req := orderEvent(
				lambda.Parameter{Name: "Customer_ID ", Type: "string", Value: "1"},
				lambda.Parameter{Name: "shoe_id", Type: "string", Value: "3"},
				lambda.Parameter{Name: "operation", Type: "string", Value: "Create"},
			)

			resp, err := h.Handle(context.Background(), req)
			if err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", resp.Text(), tt.wantText)
			}
			if resp.Response.ActionGroup != "OrderActionGroup" || resp.Response.Function != "handle_order" {
				t.Errorf("response not echoed: %+v", resp.Response)
			}
			if svc.got.CustomerID != "1" || svc.got.ShoeID != "3" || svc.got.Operation != "Create" {
				t.Errorf("request = %+v", svc.got)
			}
		})
	}
}

func TestActionHandlers_NilRequest(t *testing.T) {
	orders := &fakeOrderService{err: services.ValidationError("handle order", "Missing required parameter: customer_id, operation")}
	resp, err := NewOrderHandler(orders, quietLogger()).Handle(context.Background(), nil)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !resp.IsFailure() || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("order response = %+v", resp)
	}
	if orders.got.CustomerID != "" || orders.got.Operation != "" {
		t.Errorf("order request = %+v, want empty", orders.got)
	}

	resp, _ = NewRecommendationHandler(&fakeRecommendationService{text: "Hi there!"}, quietLogger()).Handle(context.Background(), nil)
	if resp.IsFailure() || resp.Text() != "Hi there!" || resp.MessageVersion != lambda.DefaultMessageVersion {
		t.Errorf("recommendation response = %+v", resp)
	}

	resp, _ = NewRegistrationHandler(&fakeRegistrationService{text: "Please provide your name"}, quietLogger()).Handle(context.Background(), nil)
	if resp.IsFailure() || resp.Text() != "Please provide your name" {
		t.Errorf("registration response = %+v", resp)
	}
}

func TestRecommendationAndRegistrationHandlers(t *testing.T) {
	rec := &fakeRecommendationService{text: "Hi Asha!"}
	resp, _ := NewRecommendationHandler(rec, quietLogger()).Handle(context.Background(), &lambda.ActionGroupRequest{
		Parameters: []lambda.Parameter{
			{Name: "name", Value: "Asha"},
			{Name: "shoe_size", Value: "9"},
			{Name: "activity_type", Value: "running"},
			{Name: "shoe_color", Value: "red"},
			{Name: "price_limit", Value: "below 2000"},
		},
	})
	if resp.IsFailure() || resp.Text() != "Hi Asha!" {
		t.Errorf("recommendation response = %+v", resp)
	}
	want := services.RecommendationRequest{Name: "Asha", ShoeSize: "9", ActivityType: "running", ShoeColor: "red", PriceLimit: "below 2000"}
	if *rec.got != want {
		t.Errorf("recommendation request = %+v", rec.got)
	}

	reg := &fakeRegistrationService{err: services.InfraError("register", errors.New("insert failed"))}
	resp, _ = NewRegistrationHandler(reg, quietLogger()).Handle(context.Background(), &lambda.ActionGroupRequest{
		Parameters: []lambda.Parameter{
			{Name: "name", Value: "Asha"},
			{Name: "email", Value: "asha@example.com"},
			{Name: "phone_number", Value: "+919876543210"},
		},
	})
	if !resp.IsFailure() || resp.StatusCode != http.StatusInternalServerError || resp.Text() != internalErrorText {
		t.Errorf("registration failure response = %+v", resp)
	}
	if reg.got.Email != "asha@example.com" || reg.got.PhoneNumber != "+919876543210" {
		t.Errorf("registration request = %+v", reg.got)
	}
}

func TestAgentHandler(t *testing.T) {
	t.Run("preflight", func(t *testing.T) {
		svc := &fakeAgentService{}
		resp, err := NewAgentHandler(svc, quietLogger()).Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "OPTIONS"})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if resp.StatusCode != http.StatusOK || resp.Body != "" {
			t.Errorf("preflight = %d %q", resp.StatusCode, resp.Body)
		}
		if resp.Headers["Access-Control-Allow-Methods"] != "OPTIONS,POST" {
			t.Errorf("headers = %v", resp.Headers)
		}
		if svc.got != nil {
			t.Error("agent invoked on preflight")
		}
	})

	t.Run("conversation", func(t *testing.T) {
		svc := &fakeAgentService{resp: &services.ConversationResponse{Response: "Hello!", SessionID: "abc"}}
		resp, _ := NewAgentHandler(svc, quietLogger()).Handle(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Body:       `{"user_name":"Asha","query":"hi","session_id":"abc"}`,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("StatusCode = %d", resp.StatusCode)
		}

		var body services.ConversationResponse
		if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
			t.Fatalf("invalid body %q: %v", resp.Body, err)
		}
		if body.Response != "Hello!" || body.SessionID != "abc" {
			t.Errorf("body = %+v", body)
		}
		if svc.got.UserName != "Asha" || svc.got.Query != "hi" {
			t.Errorf("request = %+v", svc.got)
		}
	})

	t.Run("numeric identifiers", func(t *testing.T) {
		svc := &fakeAgentService{resp: &services.ConversationResponse{Response: "ok", SessionID: "12345"}}
		resp, _ := NewAgentHandler(svc, quietLogger()).Handle(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Body:       `{"user_name":42,"query":"hi","session_id":12345}`,
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("StatusCode = %d, body %s", resp.StatusCode, resp.Body)
		}
		if svc.got.UserName != "42" || svc.got.SessionID != "12345" {
			t.Errorf("request = %+v", svc.got)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		svc := &fakeAgentService{resp: &services.ConversationResponse{SessionID: "user-1234abcd"}}
		resp, _ := NewAgentHandler(svc, quietLogger()).Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST"})
		if resp.StatusCode != http.StatusOK || svc.got == nil {
			t.Errorf("response = %+v", resp)
		}
	})

	t.Run("failures", func(t *testing.T) {
		bodies := []string{"{not json", `{"query":"hi"}`, `{"query":"hi","session_id":true}`}
		for _, body := range bodies {
			svc := &fakeAgentService{err: services.InfraError("converse", errors.New("throttled"))}
			resp, _ := NewAgentHandler(svc, quietLogger()).Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: body})
			if resp.StatusCode != http.StatusInternalServerError || resp.Body != `{"error": "Internal Server Error"}` {
				t.Errorf("body %q: response = %d %s", body, resp.StatusCode, resp.Body)
			}
			if resp.Headers["Access-Control-Allow-Origin"] != "*" {
				t.Errorf("body %q: headers = %v", body, resp.Headers)
			}
		}
	})
}

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	orders := &fakeOrderService{err: services.ValidationError("handle order", "operation is required")}
	agent := &fakeAgentService{resp: &services.ConversationResponse{Response: "ok", SessionID: "s1"}}
	SetupRoutes(router, &RouterConfig{
		OrderService:          orders,
		RecommendationService: &fakeRecommendationService{text: "Hi there!"},
		RegistrationService:   &fakeRegistrationService{text: "done"},
		AgentService:          agent,
		Logger:                quietLogger(),
	})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, `"status":"healthy"`},
		{"order failure", http.MethodPost, "/actions/orders", `{"parameters":[{"name":"customer_id","value":"1"}]}`, http.StatusBadRequest, `"responseState":"FAILURE"`},
		{"recommendation", http.MethodPost, "/actions/recommendations", `{"parameters":[]}`, http.StatusOK, `Hi there!`},
		{"registration bad json", http.MethodPost, "/actions/registration", `{`, http.StatusBadRequest, `Invalid request format`},
		{"agent", http.MethodPost, "/agent", `{"query":"hi"}`, http.StatusOK, `"session_id":"s1"`},
		{"agent preflight", http.MethodOptions, "/agent", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}
