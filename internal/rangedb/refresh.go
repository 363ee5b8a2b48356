package rangedb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil/urlutil"
	"github.com/ipregion/regiond/internal/errcoll"
	"github.com/ipregion/regiond/internal/region"
	"github.com/ipregion/regiond/internal/rgdhttp"
)

// rangesDoc is the structure for decoding the published registry document.
type rangesDoc struct {
	Prefixes []*prefixDoc `json:"prefixes"`
}

// prefixDoc is one entry of the published registry document.
type prefixDoc struct {
	IPPrefix string `json:"ip_prefix"`
	Region   string `json:"region"`
	Service  string `json:"service"`
}

// refresh fetches the registry and replaces the current snapshot on success.
// On failure the previous data, possibly stale, remain in effect.
func (db *Default) refresh(ctx context.Context) (err error) {
	db.logger.DebugContext(ctx, "refresh started")
	defer db.logger.DebugContext(ctx, "refresh finished")

	defer func() { db.metrics.SetStatus(ctx, err) }()

	recs, err := db.loadRanges(ctx)
	if err != nil {
		errcoll.Collect(ctx, db.errColl, db.logger, "loading region ranges", err)

		// Don't wrap the error, because it's informative enough as is.
		return err
	}

	db.logger.InfoContext(
		ctx,
		"refresh successful",
		"num_records", len(recs),
		"url", urlutil.RedactUserinfo(db.url),
	)

	db.ranges.Store(&recs)
	db.metrics.SetSize(ctx, len(recs))

	return nil
}

// loadRanges fetches, decodes, and parses the registry records.  Entries that
// cannot be parsed are skipped; a document without the prefixes array fails
// the load as a whole.
func (db *Default) loadRanges(ctx context.Context) (recs []CIDRRecord, err error) {
	defer func() { err = errors.Annotate(err, "loading ranges: %w") }()

	httpResp, err := db.http.Get(ctx, db.url)
	if err != nil {
		return nil, fmt.Errorf("requesting: %w", err)
	}
	defer func() { err = errors.WithDeferred(err, httpResp.Body.Close()) }()

	err = rgdhttp.CheckStatus(httpResp, http.StatusOK)
	if err != nil {
		// Don't wrap the error, because it's informative enough as is.
		return nil, err
	}

	doc := &rangesDoc{}
	err = json.NewDecoder(httpResp.Body).Decode(doc)
	if err != nil {
		return nil, rgdhttp.WrapServerError(
			fmt.Errorf("decoding: %w", err),
			httpResp,
		)
	}

	if doc.Prefixes == nil {
		return nil, rgdhttp.WrapServerError(
			errors.Error("no prefixes in response"),
			httpResp,
		)
	}

	recs = make([]CIDRRecord, 0, len(doc.Prefixes))
	for _, p := range doc.Prefixes {
		if p.IPPrefix == "" {
			continue
		} else if db.svcFilter != "" && p.Service != db.svcFilter {
			continue
		}

		rec, parseErr := ParsePrefix(p.IPPrefix)
		if parseErr != nil {
			db.logger.DebugContext(ctx, "skipping entry", slogutil.KeyError, parseErr)

			continue
		}

		rec.Region = region.Code(p.Region)
		rec.Service = p.Service
		recs = append(recs, rec)
	}

	return recs, nil
}
