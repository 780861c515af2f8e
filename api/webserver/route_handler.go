package webserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alioygur/is"
	"github.com/getsentry/sentry-go"
	"github.com/openmapkit/deployment-repo/api"
	"github.com/openmapkit/deployment-repo/common"
	"github.com/openmapkit/deployment-repo/common/config"
	"github.com/openmapkit/deployment-repo/common/rcontext"
	"github.com/openmapkit/deployment-repo/metrics"
	"github.com/openmapkit/deployment-repo/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sebest/xff"
	"github.com/sirupsen/logrus"
)

type handler struct {
	h          func(r *http.Request, ctx rcontext.RequestContext) interface{}
	action     string
	reqCounter *requestCounter
}

func (h handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cfg := config.Get()

	var raddr string
	if cfg.General.TrustAnyForward {
		raddr = r.Header.Get("X-Forwarded-For")
	} else {
		raddr = xff.GetRemoteAddr(r)
	}
	if raddr == "" {
		raddr = r.RemoteAddr
	}

	host, _, err := net.SplitHostPort(raddr)
	if err != nil {
		// Forwarded addresses usually carry no port
		host = raddr
	}
	r.RemoteAddr = host

	contextLog := logrus.WithFields(logrus.Fields{
		"method":             r.Method,
		"host":               r.Host,
		"usingForwardedHost": cfg.General.UseForwardedHost && r.Header.Get("X-Forwarded-Host") != "",
		"resource":           r.URL.Path,
		"queryString":        util.GetLogSafeQueryString(r),
		"requestId":          h.reqCounter.GetNextId(),
		"remoteAddr":         r.RemoteAddr,
	})
	contextLog.Info("Received request")

	// Send CORS and other basic headers
	w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Server", "deployment-repo")

	defer func() {
		if p := recover(); p != nil {
			h.recoverPanic(w, r, contextLog, p)
		}
		metrics.HttpResponseTime.With(prometheus.Labels{
			"host":   r.Host,
			"action": h.action,
			"method": r.Method,
		}).Observe(time.Since(start).Seconds())
	}()

	rctx := rcontext.FromRequest(r, *cfg, contextLog)
	r = r.WithContext(rctx)

	metrics.HttpRequests.With(prometheus.Labels{
		"host":   r.Host,
		"action": h.action,
		"method": r.Method,
	}).Inc()

	res := h.h(r, rctx)
	if res == nil {
		res = &api.EmptyResponse{}
	}

	shouldCache := true
	if result, ok := res.(*api.DoNotCacheResponse); ok {
		shouldCache = false
		res = result.Payload
	}
	if !shouldCache {
		w.Header().Set("Cache-Control", "no-store")
	}

	switch result := res.(type) {
	case *api.DownloadResponse:
		contextLog.Infof("Replying with result: %T %s (%d bytes)", res, result.Filename, result.SizeBytes)
		h.countResponse(r, http.StatusOK)
		defer result.Data.Close()

		w.Header().Set("Content-Type", result.ContentType)
		if result.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(result.SizeBytes, 10))
		}
		w.Header().Set("Content-Disposition", contentDisposition(result))
		w.WriteHeader(http.StatusOK)
		if err := writeResponseData(w, result.Data, result.SizeBytes); err != nil {
			contextLog.Warn("Error sending file: ", err)
		}
		return // Prevent sending conflicting responses
	case *api.HtmlResponse:
		contextLog.Infof("Replying with result: %T <%d chars of html>", res, len(result.HTML))
		h.countResponse(r, http.StatusOK)
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, result.HTML); err != nil {
			contextLog.Warn("Error sending html: ", err)
		}
		return
	}

	contextLog.Infof("Replying with result: %T %+v", res, res)

	statusCode := http.StatusOK
	if result, ok := res.(*api.ErrorResponse); ok {
		statusCode = statusCodeFor(result)
	}
	h.countResponse(r, statusCode)

	// Order is important: Set headers before sending responses
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	if err := encoder.Encode(res); err != nil {
		contextLog.Warn("Error sending response: ", err)
	}
}

func (h handler) countResponse(r *http.Request, statusCode int) {
	metrics.HttpResponses.With(prometheus.Labels{
		"host":       r.Host,
		"action":     h.action,
		"method":     r.Method,
		"statusCode": strconv.Itoa(statusCode),
	}).Inc()
}

func (h handler) recoverPanic(w http.ResponseWriter, r *http.Request, log *logrus.Entry, p interface{}) {
	err := util.PanicToError(p)
	log.Errorf("Panic received on %s %s: %v", r.Method, util.GetLogSafeUrl(r), err)
	sentry.CaptureException(err)

	h.countResponse(r, http.StatusInternalServerError)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	b, err := json.Marshal(api.InternalServerError("unexpected error"))
	if err != nil {
		log.Error("Error preparing InternalServerError: ", err)
		return
	}
	_, _ = w.Write(b)
}

func statusCodeFor(res *api.ErrorResponse) int {
	switch res.InternalCode {
	case common.ErrCodeNotFound:
		return http.StatusNotFound
	case common.ErrCodeBadRequest:
		return http.StatusBadRequest
	case common.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case common.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default: // Treat as unknown (a generic server error)
		return http.StatusInternalServerError
	}
}

func contentDisposition(res *api.DownloadResponse) string {
	disposition := res.TargetDisposition
	if disposition == "" {
		disposition = "inline"
	} else if disposition == "infer" {
		if util.CanInline(res.ContentType) {
			disposition = "inline"
		} else {
			disposition = "attachment"
		}
	}

	if res.Filename == "" {
		return disposition
	}
	if is.ASCII(res.Filename) {
		return disposition + "; filename=" + url.QueryEscape(res.Filename)
	}
	return disposition + "; filename*=utf-8''" + url.QueryEscape(res.Filename)
}

func writeResponseData(w http.ResponseWriter, s io.Reader, expectedBytes int64) error {
	b, err := io.Copy(w, s)
	if err != nil {
		return err
	}
	if expectedBytes > 0 && b != expectedBytes {
		return fmt.Errorf("mismatch transfer size: sent %d of %d bytes", b, expectedBytes)
	}
	return nil
}
