package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/leshachaplin/capi-forwarder/internal/domain"
)

func (i *IntegrationTestSuite) TestPurchase_Forwarded() {
	ctx, cancel := context.WithTimeout(i.ctx, 10*time.Second)
	defer cancel()

	res, err := i.client.SendPurchase(ctx, purchaseReq{
		Name:          "Ana",
		Email:         " Ana@Example.com ",
		Phone:         "+55 (11) 91234-5678",
		Value:         197,
		EventID:       "evt-integration",
		TestEventCode: "TEST123",
	}, map[string]string{
		"User-Agent":                "Mozilla/5.0 (integration)",
		"X-Nf-Client-Connection-Ip": "203.0.113.7",
	})
	i.Require().NoError(err)
	i.Require().Equal(http.StatusOK, res.status)
	i.Require().Equal("*", res.headers.Get("Access-Control-Allow-Origin"))

	var body purchaseResp
	i.Require().NoError(json.Unmarshal(res.body, &body))
	i.Require().True(body.Sent)
	i.Require().JSONEq(`{"events_received":1,"messages":[],"fbtrace_id":"trace"}`, string(body.Meta))

	received := <-i.received
	i.Require().Equal("/v19.0/"+pixelID+"/events", received.path)
	i.Require().Equal(accessToken, received.token)
	i.Require().Equal("TEST123", received.payload.TestEventCode)

	event := received.payload.Data[0]
	i.Require().Equal(domain.EventNamePurchase, event.EventName)
	i.Require().Equal(domain.ActionSourceWebsite, event.ActionSource)
	i.Require().Equal("evt-integration", event.EventID)
	i.Require().Equal(domain.HashEmail("ana@example.com"), event.UserData.Email)
	i.Require().Equal(domain.HashSHA256("5511912345678"), event.UserData.Phone)
	i.Require().Equal("Mozilla/5.0 (integration)", event.UserData.ClientUserAgent)
	i.Require().Equal("203.0.113.7", event.UserData.ClientIPAddress)
	i.Require().Equal(domain.CustomData{Currency: domain.CurrencyBRL, Value: 197}, event.CustomData)
}

func (i *IntegrationTestSuite) TestPurchase_PlatformErrorIsRelayed() {
	i.setGraphStatus(http.StatusBadRequest)

	res, err := i.client.SendPurchase(i.ctx, purchaseReq{EventID: "evt-bad"}, nil)
	i.Require().NoError(err)
	i.Require().Equal(http.StatusOK, res.status)
	i.Require().JSONEq(`{"sent":true,"meta":{"error":{"message":"Invalid parameter","code":100}}}`, string(res.body))
	<-i.received
}

func (i *IntegrationTestSuite) TestPreflight_NoOutboundCall() {
	res, err := i.client.Preflight(i.ctx)
	i.Require().NoError(err)
	i.Require().Equal(http.StatusOK, res.status)
	i.Require().Equal("POST,OPTIONS", res.headers.Get("Access-Control-Allow-Methods"))

	select {
	case <-i.received:
		i.Fail("preflight reached the graph api")
	case <-time.After(100 * time.Millisecond):
	}
}

func (i *IntegrationTestSuite) TestPurchase_Concurrent() {
	const requests = 50

	wg := &sync.WaitGroup{}
	errs := make(chan error, requests)
	for k := 0; k < requests; k++ {
		value := float64(i.Rand.Intn(1000))
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			res, err := i.client.SendPurchase(i.ctx, purchaseReq{
				Value:   value,
				EventID: fmt.Sprintf("evt-%d", n),
			}, nil)
			if err != nil {
				errs <- err
				return
			}
			if res.status != http.StatusOK {
				errs <- fmt.Errorf("unexpected status code: %d", res.status)
			}
		}(k)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		i.Require().NoError(err)
	}

	seen := make(map[string]struct{}, requests)
	for k := 0; k < requests; k++ {
		received := <-i.received
		seen[received.payload.Data[0].EventID] = struct{}{}
	}
	i.Require().Len(seen, requests)
}
