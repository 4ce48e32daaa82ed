package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bukuinduk/internal/registry/models"
)

// SectionCache keeps successfully fetched records per (tenant, student,
// domain, academic year). Only records are cached; stats are recomputed on
// read so a cached section can never disagree with its records.
type SectionCache interface {
	Get(ctx context.Context, domain models.Domain, key models.FetchKey) ([]models.Record, bool, error)
	Set(ctx context.Context, domain models.Domain, key models.FetchKey, records []models.Record) error
}

const sectionKeyPrefix = "bukuinduk:section:"

func cacheKey(domain models.Domain, key models.FetchKey) string {
	year := key.AcademicYear
	if year == "" {
		year = "*"
	}
	return fmt.Sprintf("%s%s:%s:%s:%s", sectionKeyPrefix, key.TenantID, key.StudentID, domain, year)
}

// RedisSectionCache stores encoded sections with a TTL.
type RedisSectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSectionCache(client *redis.Client, ttl time.Duration) *RedisSectionCache {
	return &RedisSectionCache{client: client, ttl: ttl}
}

func (c *RedisSectionCache) Get(ctx context.Context, domain models.Domain, key models.FetchKey) ([]models.Record, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(domain, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	records, err := DecodeRecords(domain, raw)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *RedisSectionCache) Set(ctx context.Context, domain models.Domain, key models.FetchKey, records []models.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s section: %w", domain, err)
	}
	return c.client.Set(ctx, cacheKey(domain, key), raw, c.ttl).Err()
}

var decoders = map[models.Domain]func([]byte) ([]models.Record, error){
	models.DomainGrades:          decodeAs[models.GradeRecord],
	models.DomainAttendance:      decodeAs[models.AttendanceRecord],
	models.DomainHealth:          decodeAs[models.HealthRecord],
	models.DomainDiscipline:      decodeAs[models.DisciplineRecord],
	models.DomainCounseling:      decodeAs[models.CounselingRecord],
	models.DomainExtracurricular: decodeAs[models.ExtracurricularRecord],
	models.DomainExams:           decodeAs[models.ExamRecord],
	models.DomainAchievements:    decodeAs[models.AchievementRecord],
	models.DomainScholarships:    decodeAs[models.ScholarshipRecord],
	models.DomainReportCards:     decodeAs[models.ReportCardRecord],
	models.DomainPromotion:       decodeAs[models.PromotionRecord],
	models.DomainTransfer:        decodeAs[models.TransferRecord],
	models.DomainGraduation:      decodeAs[models.GraduationRecord],
	models.DomainAlumni:          decodeAs[models.AlumniRecord],
	models.DomainLibrary:         decodeAs[models.LibraryRecord],
	models.DomainFinance:         decodeAs[models.FinanceRecord],
	models.DomainEvents:          decodeAs[models.EventRecord],
}

// DecodeRecords restores a JSON array of one domain's records.
func DecodeRecords(domain models.Domain, raw []byte) ([]models.Record, error) {
	decode, ok := decoders[domain]
	if !ok {
		return nil, fmt.Errorf("no decoder for domain %q", domain)
	}
	return decode(raw)
}

func decodeAs[T models.Record](raw []byte) ([]models.Record, error) {
	var typed []T
	if err := json.Unmarshal(raw, &typed); err != nil {
		return nil, fmt.Errorf("decode section: %w", err)
	}
	out := make([]models.Record, len(typed))
	for i, r := range typed {
		out[i] = r
	}
	return out, nil
}
