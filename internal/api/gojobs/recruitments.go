package gojobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"recruit-match/internal/errs"
)

// FetchList returns one page of the catalog plus the source-reported total.
func (c *Client) FetchList(ctx context.Context, pageNo, numOfRows int) (*ListResponse, error) {
	if pageNo < 1 {
		pageNo = 1
	}
	if numOfRows < 1 {
		numOfRows = 50
	}

	params := url.Values{}
	params.Set("pageNo", strconv.Itoa(pageNo))
	params.Set("numOfRows", strconv.Itoa(numOfRows))
	params.Set("resultType", "json")

	data, err := c.get(ctx, "/list", params)
	if err != nil {
		c.logger.Error("failed to fetch posting list",
			zap.Int("page_no", pageNo),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch posting list: %w", err)
	}

	var envelope listEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &errs.UpstreamError{Status: 200, Body: "unparseable list response: " + err.Error()}
	}

	// mirror the detail path: a 200 HTTP status can still carry a rejection
	// in the embedded result code (0 means the envelope omitted it)
	if envelope.ResultCode != 0 && envelope.ResultCode != 200 {
		return nil, &errs.UpstreamError{Status: int(envelope.ResultCode), Body: envelope.ResultMsg}
	}

	for i := range envelope.Result {
		envelope.Result[i].normalize()
	}

	c.logger.Debug("posting list fetched",
		zap.Int("page_no", pageNo),
		zap.Int("returned", len(envelope.Result)),
		zap.Int("total_count", envelope.TotalCount),
	)

	return &ListResponse{
		Items:      envelope.Result,
		TotalCount: envelope.TotalCount,
	}, nil
}

// FetchDetail returns the live detail record for one posting, or nil when
// the registry has no record for the id.
func (c *Client) FetchDetail(ctx context.Context, postingID int64) (*Record, error) {
	params := url.Values{}
	params.Set("sn", strconv.FormatInt(postingID, 10))
	params.Set("resultType", "json")

	data, err := c.get(ctx, "/detail", params)
	if err != nil {
		c.logger.Error("failed to fetch posting detail",
			zap.Int64("posting_id", postingID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("fetch posting detail: %w", err)
	}

	var envelope detailEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &errs.UpstreamError{Status: 200, Body: "unparseable detail response: " + err.Error()}
	}

	// The detail endpoint embeds its own result code; a 200 HTTP status with
	// a non-200 result code is still a rejection.
	if envelope.ResultCode != 200 {
		return nil, &errs.UpstreamError{Status: int(envelope.ResultCode), Body: envelope.ResultMsg}
	}

	if envelope.Result == nil {
		return nil, nil
	}

	envelope.Result.normalize()

	c.logger.Debug("posting detail fetched",
		zap.Int64("posting_id", postingID),
		zap.String("title", envelope.Result.Title),
	)

	return envelope.Result, nil
}
