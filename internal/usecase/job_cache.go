package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/pkg/logger"
	"matchmakr-backend/pkg/redis"
)

const jobListKeyPrefix = "jobs:list:"

// JobListPage is one cached page of a job listing
type JobListPage struct {
	Items []domain.JobPosting `json:"items"`
	Total int64               `json:"total"`
}

// JobCache caches job listings. Errors are logged and treated as misses.
type JobCache interface {
	GetList(ctx context.Context, filter domain.JobFilter, page domain.Page) (*JobListPage, bool)
	SetList(ctx context.Context, filter domain.JobFilter, page domain.Page, result *JobListPage)
	Invalidate(ctx context.Context)
}

type redisJobCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobCache returns a Redis-backed cache. A nil client yields a cache that always misses.
func NewJobCache(client *redis.Client, ttl time.Duration) JobCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &redisJobCache{client: client, ttl: ttl}
}

type jobListCacheKeyInput struct {
	IsActive        *bool  `json:"is_active"`
	EmploymentType  string `json:"employment_type"`
	ExperienceLevel string `json:"experience_level"`
	IsRemote        *bool  `json:"is_remote"`
	CompanyID       *int64 `json:"company_id"`
	Search          string `json:"search"`
	Page            int    `json:"page"`
	PageSize        int    `json:"page_size"`
}

// JobListCacheKey hashes the normalized filter and page
func JobListCacheKey(filter domain.JobFilter, page domain.Page) string {
	in := jobListCacheKeyInput{
		IsActive:  filter.IsActive,
		IsRemote:  filter.IsRemote,
		CompanyID: filter.CompanyID,
		Search:    strings.ToLower(strings.Join(strings.Fields(filter.Search), " ")),
		Page:      page.Page,
		PageSize:  page.PageSize,
	}
	if filter.EmploymentType != nil {
		in.EmploymentType = string(*filter.EmploymentType)
	}
	if filter.ExperienceLevel != nil {
		in.ExperienceLevel = string(*filter.ExperienceLevel)
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return jobListKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *redisJobCache) GetList(ctx context.Context, filter domain.JobFilter, page domain.Page) (*JobListPage, bool) {
	var out JobListPage
	found, err := c.client.GetJSON(ctx, JobListCacheKey(filter, page), &out)
	if err != nil {
		logger.Log.Warn("Job cache read failed", "error", err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	return &out, true
}

func (c *redisJobCache) SetList(ctx context.Context, filter domain.JobFilter, page domain.Page, result *JobListPage) {
	if err := c.client.SetJSON(ctx, JobListCacheKey(filter, page), result, c.ttl); err != nil {
		logger.Log.Warn("Job cache write failed", "error", err)
	}
}

func (c *redisJobCache) Invalidate(ctx context.Context) {
	if err := c.client.DeleteByPattern(ctx, jobListKeyPrefix+"*"); err != nil {
		logger.Log.Warn("Job cache invalidation failed", "error", err)
	}
}
