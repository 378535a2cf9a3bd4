package lambda

import "strings"

// DefaultMessageVersion is echoed when an invocation carries no message version
const DefaultMessageVersion = "1.0"

// Parameter is one named argument of an action group invocation
type Parameter struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value string `json:"value"`
}

// ActionGroupRequest is the function-call payload an agent sends to a backend function
type ActionGroupRequest struct {
	MessageVersion    string            `json:"messageVersion"`
	ActionGroup       string            `json:"actionGroup"`
	Function          string            `json:"function"`
	Parameters        []Parameter       `json:"parameters"`
	SessionID         string            `json:"sessionId,omitempty"`
	InputText         string            `json:"inputText,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

// ParamMap returns the parameters keyed by lower-cased name. Later duplicates win.
func (r *ActionGroupRequest) ParamMap() map[string]string {
	if r == nil {
		return map[string]string{}
	}

	params := make(map[string]string, len(r.Parameters))
	for _, p := range r.Parameters {
		params[strings.ToLower(strings.TrimSpace(p.Name))] = p.Value
	}
	return params
}

// TextBody is the plain-text content of a function response
type TextBody struct {
	Body string `json:"body"`
}

// ResponseBody wraps the text content of a function response
type ResponseBody struct {
	Text TextBody `json:"TEXT"`
}

// FunctionResponse is the result of one function call. ResponseState is empty on
// success and "FAILURE" when the call failed.
type FunctionResponse struct {
	ResponseState string       `json:"responseState,omitempty"`
	ResponseBody  ResponseBody `json:"responseBody"`
}

// ActionResult identifies the function that produced a response
type ActionResult struct {
	ActionGroup      string           `json:"actionGroup"`
	Function         string           `json:"function"`
	FunctionResponse FunctionResponse `json:"functionResponse"`
}

// ActionGroupResponse is returned for every action group invocation, success or failure.
// StatusCode is only set on failures.
type ActionGroupResponse struct {
	StatusCode     int          `json:"statusCode,omitempty"`
	Response       ActionResult `json:"response"`
	MessageVersion string       `json:"messageVersion"`
}

// Response state values
const (
	ResponseStateFailure = "FAILURE"
)

// NewTextResponse builds a successful response carrying text
func NewTextResponse(req *ActionGroupRequest, text string) ActionGroupResponse {
	if req == nil {
		req = &ActionGroupRequest{}
	}

	return ActionGroupResponse{
		Response: ActionResult{
			ActionGroup: req.ActionGroup,
			Function:    req.Function,
			FunctionResponse: FunctionResponse{
				ResponseBody: ResponseBody{Text: TextBody{Body: text}},
			},
		},
		MessageVersion: messageVersion(req),
	}
}

// NewFailureResponse builds a failed response with an HTTP-style status code
func NewFailureResponse(req *ActionGroupRequest, statusCode int, text string) ActionGroupResponse {
	resp := NewTextResponse(req, text)
	resp.StatusCode = statusCode
	resp.Response.FunctionResponse.ResponseState = ResponseStateFailure
	return resp
}

// IsFailure reports whether the response describes a failed call
func (r ActionGroupResponse) IsFailure() bool {
	return r.Response.FunctionResponse.ResponseState == ResponseStateFailure
}

// Text returns the text body of the response
func (r ActionGroupResponse) Text() string {
	return r.Response.FunctionResponse.ResponseBody.Text.Body
}

func messageVersion(req *ActionGroupRequest) string {
	if req == nil || req.MessageVersion == "" {
		return DefaultMessageVersion
	}
	return req.MessageVersion
}
