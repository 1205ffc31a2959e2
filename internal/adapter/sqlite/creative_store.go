package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// adColumns is the projection shared by every read. A creative ad row is
// the inner join of the creative table with its campaign, category,
// eligibility, geo-target and daypart records; an ad missing any dependent
// row is excluded from reads by construction.
const adColumns = `
        can.creative_instance_id,
        can.creative_set_id,
        can.campaign_id,
        cam.start_at_timestamp,
        cam.end_at_timestamp,
        cam.daily_cap,
        cam.advertiser_id,
        cam.priority,
        ca.conversion,
        ca.per_day,
        ca.total_max,
        c.category,
        gt.geo_target,
        ca.target_url,
        can.company_name,
        can.alt,
        cam.ptr,
        dp.dow,
        dp.start_minute,
        dp.end_minute
    FROM creative_ntp_ads AS can
        INNER JOIN campaigns AS cam ON cam.campaign_id = can.campaign_id
        INNER JOIN categories AS c ON c.creative_set_id = can.creative_set_id
        INNER JOIN creative_ads AS ca ON ca.creative_set_id = can.creative_set_id
        INNER JOIN geo_targets AS gt ON gt.campaign_id = can.campaign_id
        INNER JOIN dayparts AS dp ON dp.campaign_id = can.campaign_id`

// adOrdering keeps join rows deterministic: ads by id, their geo targets
// and dayparts in insertion order.
const adOrdering = ` ORDER BY can.creative_instance_id, c.category, gt.rowid, dp.rowid`

// CreativeStore implements port.CreativeStore over an embedded SQLite
// database. Writes are partitioned into fixed-size batches, each committed
// as one transaction spanning all six tables.
type CreativeStore struct {
	db        *sql.DB
	batchSize int
	now       func() time.Time
}

// NewCreativeStore returns a store writing in batches of batchSize ads.
// A non-positive batch size is a configuration error.
func NewCreativeStore(db *sql.DB, batchSize int) (*CreativeStore, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size %d: %w", batchSize, port.ErrInvalidBatchSize)
	}
	return &CreativeStore{db: db, batchSize: batchSize, now: time.Now}, nil
}

// Save upserts ads into the creative table and its dependent tables.
// Saving an empty list succeeds without touching storage. Each batch is
// one atomic transaction; the first failing batch fails the whole call.
// Partial application across batches is acceptable since callers always
// re-sync from a full catalog.
func (s *CreativeStore) Save(ctx context.Context, ads []domain.CreativeAd) error {
	if len(ads) == 0 {
		return nil
	}

	for start := 0; start < len(ads); start += s.batchSize {
		end := min(start+s.batchSize, len(ads))
		if err := s.saveBatch(ctx, ads[start:end]); err != nil {
			return fmt.Errorf("save batch at offset %d: %w", start, err)
		}
	}
	return nil
}

func (s *CreativeStore) saveBatch(ctx context.Context, batch []domain.CreativeAd) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var (
		creativeArgs []any
		campaignArgs []any
		categoryArgs []any
		adArgs       []any
		geoArgs      []any
		daypartArgs  []any
		geoRows      int
		daypartRows  int
	)
	for _, ad := range batch {
		creativeArgs = append(creativeArgs, ad.CreativeInstanceID,
			ad.CreativeSetID, ad.CampaignID, ad.CompanyName, ad.Alt)
		campaignArgs = append(campaignArgs, ad.CampaignID,
			ad.StartAt.Unix(), ad.EndAt.Unix(), ad.DailyCap,
			ad.AdvertiserID, ad.Priority, ad.PTR)
		categoryArgs = append(categoryArgs, ad.CreativeSetID, ad.Category)
		adArgs = append(adArgs, ad.CreativeSetID, ad.Conversion,
			ad.PerDay, ad.TotalMax, ad.TargetURL)
		for _, geo := range ad.GeoTargets {
			geoArgs = append(geoArgs, ad.CampaignID, geo)
			geoRows++
		}
		for _, dp := range ad.Dayparts {
			daypartArgs = append(daypartArgs, ad.CampaignID, dp.Dow,
				dp.StartMinute, dp.EndMinute)
			daypartRows++
		}
	}

	inserts := []struct {
		query string
		cols  int
		rows  int
		args  []any
	}{
		{`INSERT OR REPLACE INTO creative_ntp_ads
            (creative_instance_id, creative_set_id, campaign_id, company_name, alt)
            VALUES `, 5, len(batch), creativeArgs},
		{`INSERT OR REPLACE INTO campaigns
            (campaign_id, start_at_timestamp, end_at_timestamp, daily_cap, advertiser_id, priority, ptr)
            VALUES `, 7, len(batch), campaignArgs},
		{`INSERT OR REPLACE INTO categories
            (creative_set_id, category)
            VALUES `, 2, len(batch), categoryArgs},
		{`INSERT OR REPLACE INTO creative_ads
            (creative_set_id, conversion, per_day, total_max, target_url)
            VALUES `, 5, len(batch), adArgs},
		{`INSERT OR REPLACE INTO geo_targets
            (campaign_id, geo_target)
            VALUES `, 2, geoRows, geoArgs},
		{`INSERT OR REPLACE INTO dayparts
            (campaign_id, dow, start_minute, end_minute)
            VALUES `, 4, daypartRows, daypartArgs},
	}
	for _, ins := range inserts {
		if ins.rows == 0 {
			continue
		}
		if _, err = tx.ExecContext(ctx, ins.query+placeholders(ins.cols, ins.rows), ins.args...); err != nil {
			return err
		}
	}
	return nil
}

// Delete clears the catalog with an explicit per-table delete rather than
// relying on foreign-key cascade.
func (s *CreativeStore) Delete(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for _, table := range []string{
		"creative_ntp_ads", "campaigns", "categories",
		"creative_ads", "geo_targets", "dayparts",
	} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

// GetForCreativeInstanceID returns the ad with the given id. The join
// yields one row per geo target and daypart; those are folded back into a
// single ad. Zero rows or more than one distinct ad is a failure - the
// unique key must never silently pick one.
func (s *CreativeStore) GetForCreativeInstanceID(ctx context.Context, id string) (domain.CreativeAd, error) {
	if id == "" {
		return domain.CreativeAd{}, port.ErrEmptyCreativeInstanceID
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+adColumns+" WHERE can.creative_instance_id = ?"+adOrdering, id)
	if err != nil {
		return domain.CreativeAd{}, fmt.Errorf("get creative ad: %w", err)
	}
	ads, err := foldAdRows(rows)
	if err != nil {
		return domain.CreativeAd{}, fmt.Errorf("get creative ad: %w", err)
	}

	switch len(ads) {
	case 0:
		return domain.CreativeAd{}, fmt.Errorf("creative instance id %q: %w", id, port.ErrCreativeNotFound)
	case 1:
		return ads[0], nil
	default:
		return domain.CreativeAd{}, fmt.Errorf("creative instance id %q: %w", id, port.ErrAmbiguousCreative)
	}
}

// GetForCategories returns the active ads matching any of the given
// categories. Matching is case-insensitive; both sides are lower-cased at
// query time, the stored text is left as authored. An empty category set
// matches nothing: absence of a filter means no match, not all ads.
func (s *CreativeStore) GetForCategories(ctx context.Context, categories []string) ([]string, []domain.CreativeAd, error) {
	if len(categories) == 0 {
		return nil, nil, nil
	}

	normalized := make([]string, len(categories))
	args := make([]any, 0, len(categories)+1)
	for i, category := range categories {
		normalized[i] = strings.ToLower(category)
		args = append(args, normalized[i])
	}
	args = append(args, s.now().Unix())

	query := "SELECT " + adColumns + `
    WHERE LOWER(c.category) IN (` + placeholderList(len(categories)) + `)
        AND ? BETWEEN cam.start_at_timestamp AND cam.end_at_timestamp` + adOrdering

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return normalized, nil, fmt.Errorf("get creative ads for categories: %w", err)
	}
	ads, err := foldAdRows(rows)
	if err != nil {
		return normalized, nil, fmt.Errorf("get creative ads for categories: %w", err)
	}
	return normalized, ads, nil
}

// GetAll returns every currently-active ad plus the deduplicated, sorted
// categories present in the result. Downstream classifiers bootstrap from
// the category list.
func (s *CreativeStore) GetAll(ctx context.Context) ([]string, []domain.CreativeAd, error) {
	query := "SELECT " + adColumns + `
    WHERE ? BETWEEN cam.start_at_timestamp AND cam.end_at_timestamp` + adOrdering

	rows, err := s.db.QueryContext(ctx, query, s.now().Unix())
	if err != nil {
		return nil, nil, fmt.Errorf("get all creative ads: %w", err)
	}
	ads, err := foldAdRows(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("get all creative ads: %w", err)
	}

	seen := make(map[string]struct{})
	var categories []string
	for _, ad := range ads {
		if _, ok := seen[ad.Category]; ok {
			continue
		}
		seen[ad.Category] = struct{}{}
		categories = append(categories, ad.Category)
	}
	sort.Strings(categories)

	return categories, ads, nil
}

// foldAdRows groups join rows by (creative instance id, category),
// accumulating the distinct geo targets and dayparts each ad spans. Input
// order is preserved for first occurrences.
func foldAdRows(rows *sql.Rows) ([]domain.CreativeAd, error) {
	defer rows.Close()

	type adKey struct {
		instanceID string
		category   string
	}
	var (
		order    []adKey
		byKey    = make(map[adKey]*domain.CreativeAd)
		seenGeo  = make(map[adKey]map[string]struct{})
		seenPart = make(map[adKey]map[domain.Daypart]struct{})
	)

	for rows.Next() {
		var (
			ad             domain.CreativeAd
			startAt, endAt int64
			geoTarget      string
			daypart        domain.Daypart
		)
		if err := rows.Scan(
			&ad.CreativeInstanceID, &ad.CreativeSetID, &ad.CampaignID,
			&startAt, &endAt, &ad.DailyCap, &ad.AdvertiserID,
			&ad.Priority, &ad.Conversion, &ad.PerDay, &ad.TotalMax,
			&ad.Category, &geoTarget, &ad.TargetURL, &ad.CompanyName,
			&ad.Alt, &ad.PTR, &daypart.Dow, &daypart.StartMinute,
			&daypart.EndMinute,
		); err != nil {
			return nil, err
		}
		ad.StartAt = time.Unix(startAt, 0).UTC()
		ad.EndAt = time.Unix(endAt, 0).UTC()

		key := adKey{instanceID: ad.CreativeInstanceID, category: ad.Category}
		folded, ok := byKey[key]
		if !ok {
			copied := ad
			byKey[key] = &copied
			folded = &copied
			order = append(order, key)
			seenGeo[key] = make(map[string]struct{})
			seenPart[key] = make(map[domain.Daypart]struct{})
		}
		if _, ok := seenGeo[key][geoTarget]; !ok {
			seenGeo[key][geoTarget] = struct{}{}
			folded.GeoTargets = append(folded.GeoTargets, geoTarget)
		}
		if _, ok := seenPart[key][daypart]; !ok {
			seenPart[key][daypart] = struct{}{}
			folded.Dayparts = append(folded.Dayparts, daypart)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ads := make([]domain.CreativeAd, 0, len(order))
	for _, key := range order {
		ads = append(ads, *byKey[key])
	}
	return ads, nil
}

// placeholders builds "(?,...),(?,...)" for a multi-row insert of rows
// rows with cols columns each.
func placeholders(cols, rows int) string {
	row := "(" + placeholderList(cols) + ")"
	parts := make([]string, rows)
	for i := range parts {
		parts[i] = row
	}
	return strings.Join(parts, ",")
}

func placeholderList(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ",")
}
