package soapclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/infrastructure"
	"focusmap/pkg/soap"
)

const maxResponseBytes = 4 << 20

type Config struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPClient   *http.Client
}

// CommentClient адаптер REST -> SOAP сервис комментариев
type CommentClient struct {
	url        string
	httpClient *http.Client
	readPolicy infrastructure.CallPolicy
	// addComment не идемпотентен, повторов нет
	writePolicy infrastructure.CallPolicy
}

func NewCommentClient(cfg Config) *CommentClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &CommentClient{
		url:        cfg.URL,
		httpClient: httpClient,
		readPolicy: infrastructure.CallPolicy{
			Timeout:      cfg.Timeout,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		},
		writePolicy: infrastructure.CallPolicy{
			Timeout: cfg.Timeout,
		},
	}
}

// GetWorkplaceComments возвращает комментарии рабочего места, новые сверху
func (c *CommentClient) GetWorkplaceComments(ctx context.Context, workspaceID string) ([]entity.CommentDTO, error) {
	req := entity.GetWorkplaceCommentsRequest{WorkspaceID: workspaceID}

	var resp entity.GetWorkplaceCommentsResponse
	err := infrastructure.Invoke(ctx, infrastructure.ProtocolSOAP, entity.OpGetWorkplaceComments, c.readPolicy, func(ctx context.Context) error {
		resp = entity.GetWorkplaceCommentsResponse{}
		return c.call(ctx, entity.OpGetWorkplaceComments, req, &resp)
	})
	if err != nil {
		return nil, err
	}

	if resp.Comments == nil {
		return []entity.CommentDTO{}, nil
	}
	return resp.Comments, nil
}

// AddComment добавляет комментарий и возвращает его в сохраненном виде
func (c *CommentClient) AddComment(ctx context.Context, workspaceID, userID, content string) (*entity.CommentDTO, error) {
	req := entity.AddCommentRequest{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Content:     content,
	}

	var resp entity.AddCommentResponse
	err := infrastructure.Invoke(ctx, infrastructure.ProtocolSOAP, entity.OpAddComment, c.writePolicy, func(ctx context.Context) error {
		return c.call(ctx, entity.OpAddComment, req, &resp)
	})
	if err != nil {
		return nil, err
	}

	return &resp.Comment, nil
}

func (c *CommentClient) call(ctx context.Context, operation string, req, out any) error {
	payload, err := soap.Marshal(req)
	if err != nil {
		return &infrastructure.CallError{
			Protocol:  infrastructure.ProtocolSOAP,
			Operation: operation,
			Kind:      infrastructure.ErrProtocolFault,
			Message:   "failed to encode request",
			Err:       err,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return transportError(ctx, operation, err)
	}
	httpReq.Header.Set("Content-Type", soap.ContentType)
	httpReq.Header.Set("SOAPAction", fmt.Sprintf("%q", entity.CommentServiceNamespace+"/"+operation))

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportError(ctx, operation, err)
	}
	defer res.Body.Close()

	// fault приходит с 500, любые другие коды - не SOAP ответ
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		kind := infrastructure.ErrProtocolFault
		if res.StatusCode == http.StatusBadGateway || res.StatusCode == http.StatusServiceUnavailable {
			kind = infrastructure.ErrTransport
		}
		return &infrastructure.CallError{
			Protocol:  infrastructure.ProtocolSOAP,
			Operation: operation,
			Kind:      kind,
			Code:      fmt.Sprintf("HTTP %d", res.StatusCode),
			Message:   http.StatusText(res.StatusCode),
		}
	}

	err = soap.Unmarshal(io.LimitReader(res.Body, maxResponseBytes), out)
	if err == nil {
		return nil
	}

	var fault *soap.Fault
	if errors.As(err, &fault) {
		return &infrastructure.CallError{
			Protocol:  infrastructure.ProtocolSOAP,
			Operation: operation,
			Kind:      infrastructure.ErrProtocolFault,
			Code:      fault.Code,
			Message:   fault.String,
			Err:       fault,
		}
	}
	if ctx.Err() != nil {
		return transportError(ctx, operation, err)
	}

	return &infrastructure.CallError{
		Protocol:  infrastructure.ProtocolSOAP,
		Operation: operation,
		Kind:      infrastructure.ErrProtocolFault,
		Message:   "malformed response",
		Err:       err,
	}
}

// transportError отличает таймаут от прочих сетевых ошибок
func transportError(ctx context.Context, operation string, err error) error {
	kind := infrastructure.ErrTransport

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		kind = infrastructure.ErrTimeout
	} else if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		kind = infrastructure.ErrCanceled
	}

	return &infrastructure.CallError{
		Protocol:  infrastructure.ProtocolSOAP,
		Operation: operation,
		Kind:      kind,
		Message:   err.Error(),
		Err:       err,
	}
}
