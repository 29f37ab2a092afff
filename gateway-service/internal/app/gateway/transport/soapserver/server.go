package soapserver

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"
	"text/template"

	"focusmap/gateway-service/internal/app/gateway/entity"
	"focusmap/gateway-service/internal/app/gateway/service"
	"focusmap/pkg/logger"
	"focusmap/pkg/metrics"
	"focusmap/pkg/soap"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	serviceName = "gateway-soap"

	// DefaultPath путь сервиса комментариев
	DefaultPath = "/commentservice"

	maxBodyBytes = 1 << 20
)

//go:embed commentservice.wsdl
var wsdlSource string

var wsdlTemplate = template.Must(template.New("wsdl").Parse(wsdlSource))

// CommentManager операции с комментариями, которые обслуживает SOAP сервис
type CommentManager interface {
	GetWorkspaceComments(ctx context.Context, workspaceID string) ([]entity.Comment, error)
	AddComment(ctx context.Context, workspaceID, userID, content string) (*entity.Comment, error)
}

// Server обрабатывает SOAP 1.1 запросы сервиса комментариев
type Server struct {
	comments CommentManager
	validate *validator.Validate
}

func NewServer(comments CommentManager) *Server {
	return &Server{
		comments: comments,
		validate: validator.New(),
	}
}

// NewRouter создает gin engine SOAP листенера
func NewRouter(path string, srv *Server) *gin.Engine {
	if path == "" {
		path = DefaultPath
	}

	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET(path, srv.ServeWSDL)
	router.POST(path, srv.Handle)

	return router
}

// ServeWSDL отдает описание сервиса по GET <path>?wsdl
func (s *Server) ServeWSDL(c *gin.Context) {
	if _, ok := c.GetQuery("wsdl"); !ok {
		c.String(http.StatusMethodNotAllowed, "use POST for SOAP requests or ?wsdl for the service description")
		return
	}

	var address bytes.Buffer
	if err := xml.EscapeText(&address, []byte(serviceAddress(c.Request))); err != nil {
		c.String(http.StatusInternalServerError, "failed to render wsdl")
		return
	}

	var out bytes.Buffer
	if err := wsdlTemplate.Execute(&out, struct{ Address string }{Address: address.String()}); err != nil {
		logger.Error().Err(err).Msg("Failed to render WSDL")
		c.String(http.StatusInternalServerError, "failed to render wsdl")
		return
	}

	c.Data(http.StatusOK, soap.ContentType, out.Bytes())
}

func serviceAddress(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// Handle разбирает конверт и вызывает операцию по имени первого элемента soap:Body
func (s *Server) Handle(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	d, start, err := soap.ReadBody(c.Request.Body)
	if err != nil {
		s.writeFault(c, "unknown", soap.FaultClient, "malformed SOAP envelope", err.Error())
		return
	}

	operation := start.Name.Local
	// клиенты не всегда квалифицируют элемент операции
	start.Name.Space = entity.CommentServiceNamespace

	switch operation {
	case entity.OpGetWorkplaceComments:
		var req entity.GetWorkplaceCommentsRequest
		if err := d.DecodeElement(&req, &start); err != nil {
			s.writeFault(c, operation, soap.FaultClient, "malformed request", err.Error())
			return
		}
		s.getWorkplaceComments(c, req)

	case entity.OpAddComment:
		var req entity.AddCommentRequest
		if err := d.DecodeElement(&req, &start); err != nil {
			s.writeFault(c, operation, soap.FaultClient, "malformed request", err.Error())
			return
		}
		s.addComment(c, req)

	default:
		s.writeFault(c, "unknown", soap.FaultClient, "unknown operation: "+operation, "")
	}
}

func (s *Server) getWorkplaceComments(c *gin.Context, req entity.GetWorkplaceCommentsRequest) {
	const op = entity.OpGetWorkplaceComments

	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	if err := s.validate.Struct(req); err != nil {
		s.writeFault(c, op, soap.FaultClient, "invalid request", err.Error())
		return
	}

	comments, err := s.comments.GetWorkspaceComments(c.Request.Context(), req.WorkspaceID)
	if err != nil {
		s.writeServiceError(c, op, req.WorkspaceID, err)
		return
	}

	resp := entity.GetWorkplaceCommentsResponse{Comments: make([]entity.CommentDTO, 0, len(comments))}
	for i := range comments {
		resp.Comments = append(resp.Comments, entity.NewCommentDTO(&comments[i]))
	}

	s.writeResponse(c, op, resp)
}

func (s *Server) addComment(c *gin.Context, req entity.AddCommentRequest) {
	const op = entity.OpAddComment

	req.WorkspaceID = strings.TrimSpace(req.WorkspaceID)
	req.UserID = strings.TrimSpace(req.UserID)
	if err := s.validate.Struct(req); err != nil {
		s.writeFault(c, op, soap.FaultClient, "invalid request", err.Error())
		return
	}

	comment, err := s.comments.AddComment(c.Request.Context(), req.WorkspaceID, req.UserID, req.Content)
	if err != nil {
		s.writeServiceError(c, op, req.WorkspaceID, err)
		return
	}

	s.writeResponse(c, op, entity.AddCommentResponse{Comment: entity.NewCommentDTO(comment)})
}

// writeServiceError переводит ошибку сервиса в soap:Fault.
// Для ошибок хранилища клиент получает soap:Server без деталей, цепочка ошибки остается в логе.
func (s *Server) writeServiceError(c *gin.Context, op, workspaceID string, err error) {
	switch {
	case errors.Is(err, service.ErrWorkspaceNotFound):
		s.writeFault(c, op, soap.FaultClient, "workspace not found: "+workspaceID, "")
	case errors.Is(err, service.ErrInvalidInput):
		s.writeFault(c, op, soap.FaultClient, "invalid request", err.Error())
	default:
		logger.Error().Err(err).Str("operation", op).Str("workspace_id", workspaceID).Msg("SOAP operation failed")
		s.writeFault(c, op, soap.FaultServer, "internal error", "")
	}
}

func (s *Server) writeResponse(c *gin.Context, op string, content any) {
	body, err := soap.Marshal(content)
	if err != nil {
		logger.Error().Err(err).Str("operation", op).Msg("Failed to marshal SOAP response")
		s.writeFault(c, op, soap.FaultServer, "failed to encode response", "")
		return
	}

	metrics.SoapOperationsTotal.WithLabelValues(op, "ok").Inc()
	c.Data(http.StatusOK, soap.ContentType, body)
}

func (s *Server) writeFault(c *gin.Context, op, code, message, detail string) {
	outcome := "client_fault"
	if code == soap.FaultServer {
		outcome = "server_fault"
	}
	metrics.SoapOperationsTotal.WithLabelValues(op, outcome).Inc()

	body, err := soap.MarshalFault(code, message, detail)
	if err != nil {
		c.String(http.StatusInternalServerError, message)
		return
	}
	c.Data(http.StatusInternalServerError, soap.ContentType, body)
}
