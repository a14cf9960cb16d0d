package sendrecoverytoken

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "regain/internal/core/domain/common"
	"regain/internal/core/domain/recovery"
	"regain/internal/core/domain/user"
	service "regain/internal/core/services/send_recovery_token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const TOKEN = recovery.Token("test-recovery-token")

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Token = TOKEN
	return result, nil
}

func TestSendRecoveryTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceError   error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusNoContent,
			expectedInput:  &service.Input{Email: c.NewEmail("test@test.test")},
		},
		{
			id:             "email is lowercased",
			body:           `{"email": "Test@Test.Test"}`,
			expectedStatus: http.StatusNoContent,
			expectedInput:  &service.Input{Email: c.NewEmail("test@test.test")},
		},
		{
			id:             "invalid json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "empty email",
			body:           `{"email": ""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "account does not exist",
			body:           `{"email": "test@test.test"}`,
			serviceError:   user.ErrUserDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:             "delivery failed",
			body:           `{"email": "test@test.test"}`,
			serviceError:   recovery.ErrDeliveryFailed,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/auth/recover-token", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{err: testcase.serviceError}
			rr := httptest.NewRecorder()
			handler := New(service, false)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, service.input)
			assert.Equal(t, "", rr.Header().Get("x-test-recovery-token"))
		})
	}
}

func TestTokenHeaderIsSetInTestMode(t *testing.T) {
	req, err := http.NewRequest("POST", "/auth/recover-token", strings.NewReader(`{"email": "test@test.test"}`))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler := New(&stubService{}, true)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, string(TOKEN), rr.Header().Get("x-test-recovery-token"))
}
