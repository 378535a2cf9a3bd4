package lambda

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
)

func TestParamMap(t *testing.T) {
	req := &ActionGroupRequest{
		Parameters: []Parameter{
			{Name: "Name", Type: "string", Value: "Asha"},
			{Name: " SHOE_SIZE ", Type: "string", Value: "9"},
		},
	}

	params := req.ParamMap()
	if params["name"] != "Asha" || params["shoe_size"] != "9" {
		t.Errorf("ParamMap() = %v", params)
	}
}

func TestResponseEnvelopes(t *testing.T) {
	req := &ActionGroupRequest{ActionGroup: "orders", Function: "manage_order"}

	ok := NewTextResponse(req, "done")
	raw, err := json.Marshal(ok)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	want := `{"response":{"actionGroup":"orders","function":"manage_order","functionResponse":{"responseBody":{"TEXT":{"body":"done"}}}},"messageVersion":"1.0"}`
	if string(raw) != want {
		t.Errorf("success envelope = %s, want %s", raw, want)
	}
	if ok.IsFailure() {
		t.Error("success response reported as failure")
	}

	failed := NewFailureResponse(req, 400, "Missing required parameter: operation")
	raw, err = json.Marshal(failed)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	want = `{"statusCode":400,"response":{"actionGroup":"orders","function":"manage_order","functionResponse":{"responseState":"FAILURE","responseBody":{"TEXT":{"body":"Missing required parameter: operation"}}}},"messageVersion":"1.0"}`
	if string(raw) != want {
		t.Errorf("failure envelope = %s, want %s", raw, want)
	}
	if !failed.IsFailure() || failed.Text() != "Missing required parameter: operation" {
		t.Errorf("unexpected failure response %+v", failed)
	}
}

func TestRequestLogger(t *testing.T) {
	logger := logrus.New()
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})

	if got := RequestLogger(ctx, logger).Data["request_id"]; got != "req-1" {
		t.Errorf("request_id = %v", got)
	}
	if _, ok := RequestLogger(context.Background(), logger).Data["request_id"]; ok {
		t.Error("request_id set without a Lambda context")
	}
}

func TestGetRuntime(t *testing.T) {
	if GetRuntime() != GetRuntime() {
		t.Error("GetRuntime() must return a singleton")
	}
}

func TestNilRequest(t *testing.T) {
	var req *ActionGroupRequest

	if params := req.ParamMap(); params == nil || len(params) != 0 {
		t.Errorf("ParamMap() on nil request = %v, want empty map", params)
	}

	resp := NewFailureResponse(req, 400, "Error: missing")
	if !resp.IsFailure() || resp.StatusCode != 400 || resp.Text() != "Error: missing" {
		t.Errorf("NewFailureResponse() = %+v", resp)
	}
	if resp.MessageVersion != DefaultMessageVersion {
		t.Errorf("MessageVersion = %q, want %q", resp.MessageVersion, DefaultMessageVersion)
	}
}
