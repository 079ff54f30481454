package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/leshachaplin/capi-forwarder/app"
	"github.com/leshachaplin/capi-forwarder/internal/config"
)

func main() {
	lambda.Start(app.New(config.Load).LambdaHandler())
}
