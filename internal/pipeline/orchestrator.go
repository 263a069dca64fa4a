package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/osbp/contract_insights/internal/logger"
	"github.com/osbp/contract_insights/internal/pipeline/enrich"
	"github.com/osbp/contract_insights/internal/pipeline/profile"
	"github.com/osbp/contract_insights/internal/pipeline/types"
)

type ProfileJob struct {
	Rule    string
	Index   int
	Row     types.ContractRecord
	Attempt int
}

type ProfileResult struct {
	Job   ProfileJob
	Path  string
	Error error
}

// Orchestrator fans profile assembly out over a worker pool. Workers share
// one immutable enrichment context; the only write path is the artifact file
// each job owns exclusively.
type Orchestrator struct {
	enrichCtx *enrich.Context
	appLogger *logger.Logger
	outDir    string

	// Settings
	maxConcurrency int
	retryLimit     int

	// Internal State
	mu        sync.Mutex
	completed []string
	failed    int
	wg        sync.WaitGroup
	listenWg  sync.WaitGroup

	// Channels
	jobChan    chan ProfileJob
	resultChan chan ProfileResult
}

func NewOrchestrator(enrichCtx *enrich.Context, outDir string, appLogger *logger.Logger, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		enrichCtx:      enrichCtx,
		appLogger:      appLogger,
		outDir:         outDir,
		maxConcurrency: concurrency,
		retryLimit:     2,
		jobChan:        make(chan ProfileJob, 100),
		resultChan:     make(chan ProfileResult, 100),
	}
}

func (o *Orchestrator) Start() {
	const component = "Orchestrator"
	o.appLogger.Info(component, "Starting profile workers: concurrency=%d", o.maxConcurrency)

	for i := 0; i < o.maxConcurrency; i++ {
		o.wg.Add(1)
		go o.worker(&o.wg)
	}

	o.listenWg.Add(1)
	go o.listenToResults()
}

func (o *Orchestrator) AddJob(job ProfileJob) {
	o.jobChan <- job
}

func (o *Orchestrator) Close() {
	close(o.jobChan)
}

// Wait blocks until every queued job has been processed and reported.
// Returns the artifact paths written and the count of failed jobs.
func (o *Orchestrator) Wait() ([]string, int) {
	o.wg.Wait()
	close(o.resultChan)
	o.listenWg.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.completed, o.failed
}

func (o *Orchestrator) worker(wg *sync.WaitGroup) {
	const component = "ProfileWorker"
	defer wg.Done()

	for job := range o.jobChan {
		path := o.profilePath(job)

		var err error
		for job.Attempt = 0; job.Attempt <= o.retryLimit; job.Attempt++ {
			o.appLogger.Debug(component, "Assembling profile: rule=%s contract=%s attempt=%d", job.Rule, job.Row.ContractNo, job.Attempt)

			elements := profile.Assemble(job.Row, o.enrichCtx)
			if err = profile.WriteArtifact(elements, path); err == nil {
				break
			}
			o.appLogger.Warn(component, "Profile write failed, retrying: rule=%s contract=%s attempt=%d err=%v",
				job.Rule, job.Row.ContractNo, job.Attempt, err)
		}

		o.resultChan <- ProfileResult{Job: job, Path: path, Error: err}
	}
}

func (o *Orchestrator) profilePath(job ProfileJob) string {
	contract := strings.ReplaceAll(job.Row.ContractNo, "/", "_")
	if contract == "" {
		contract = "unknown"
	}
	name := fmt.Sprintf("%s_%02d_%s.csv", job.Rule, job.Index+1, contract)
	return filepath.Join(o.outDir, "profiles", name)
}

func (o *Orchestrator) listenToResults() {
	const component = "Orchestrator-Feedback"
	defer o.listenWg.Done()

	for result := range o.resultChan {
		if result.Error != nil {
			o.appLogger.Error(component, "Profile failed after max retries: rule=%s contract=%s err=%v",
				result.Job.Rule, result.Job.Row.ContractNo, result.Error)
			o.mu.Lock()
			o.failed++
			o.mu.Unlock()
			continue
		}

		o.appLogger.Debug(component, "Profile written: path=%s", result.Path)
		o.mu.Lock()
		o.completed = append(o.completed, result.Path)
		o.mu.Unlock()
	}
}
