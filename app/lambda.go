package app

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/getsentry/sentry-go"
)

type LambdaHandlerFn func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// LambdaHandler serves the public router behind an API Gateway proxy
// integration. Failed invocations flush Sentry before returning since the
// runtime freezes the process between invocations.
func (a *App) LambdaHandler() LambdaHandlerFn {
	adapter := httpadapter.New(a.Handler())

	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		a.logger.Debug().Str("method", req.HTTPMethod).Str("path", req.Path).Msg("lambda request")

		resp, err := adapter.ProxyWithContext(ctx, req)
		if err != nil || resp.StatusCode >= http.StatusInternalServerError {
			if !sentry.Flush(sentryFlushTimeout) {
				a.logger.Debug().Msg("sentry flush skipped or timed out")
			}
		}
		return resp, err
	}
}
