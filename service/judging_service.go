// Package service wires the Kafka transport, the PostgreSQL result
// store, and the orchestrator into one submission-processing loop.
// Grounded on judging-service/service.JudgingService.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	kafkalib "github.com/codecourt/judge-engine/kafka"
	"github.com/codecourt/judge-engine/metrics"
	"github.com/codecourt/judge-engine/model"
	"github.com/codecourt/judge-engine/orchestrator"

	"github.com/codecourt/judge-engine/config"
	"github.com/codecourt/judge-engine/db"
)

// ResultStore is the persistence surface JudgingService needs from db.DB.
// Declaring it here (rather than depending on *db.DB directly) lets tests
// substitute a mock.
type ResultStore interface {
	GetTestCases(problemID string) ([]model.TestCase, error)
	SaveJudgeResult(result *model.JudgeResult) error
}

// Judger is the judging surface JudgingService needs from orchestrator.Orchestrator.
type Judger interface {
	Judge(ctx context.Context, sub *model.Submission) *model.JudgeResult
}

// JudgingService consumes submissions from Kafka, judges them, persists
// the result, and republishes it on the result topic.
type JudgingService struct {
	cfg     *config.Config
	db      ResultStore
	judge   Judger
	workers chan struct{}
}

// NewJudgingService wires a JudgingService from cfg: a PostgreSQL result
// store and an Orchestrator rooted at cfg.WorkDir.
func NewJudgingService(cfg *config.Config) (*JudgingService, error) {
	database, err := db.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &JudgingService{
		cfg:     cfg,
		db:      database,
		judge:   orchestrator.New(cfg.WorkDir),
		workers: make(chan struct{}, cfg.ConcurrentJudges),
	}, nil
}

// Close releases the result store's connection pool.
func (s *JudgingService) Close() error {
	if closer, ok := s.db.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// ProcessSubmissions polls consumer until ctx is canceled, dispatching
// each decoded submission to its own goroutine bounded by workers.
func (s *JudgingService) ProcessSubmissions(ctx context.Context, consumer *kafkalib.Consumer, producer *kafkalib.Producer) {
	for {
		select {
		case <-ctx.Done():
			log.Println("context canceled, stopping submission processing")
			return
		default:
			msg, err := consumer.Consume(s.cfg.PollTimeout)
			if err != nil {
				log.Printf("error consuming message: %v", err)
				continue
			}
			if msg == nil {
				continue
			}
			metrics.RecordKafkaMessage("judge-engine", s.cfg.KafkaSubmissionTopic, "consume")

			s.workers <- struct{}{}
			metrics.SetJudgingQueueLength(len(s.workers))
			go func(value []byte) {
				defer func() {
					<-s.workers
					metrics.SetJudgingQueueLength(len(s.workers))
				}()
				s.processSubmission(ctx, value, producer)
			}(msg.Value)

			if err := consumer.Commit(); err != nil {
				log.Printf("error committing offset: %v", err)
			}
		}
	}
}

func (s *JudgingService) processSubmission(ctx context.Context, value []byte, producer *kafkalib.Producer) {
	var sub model.Submission
	if err := json.Unmarshal(value, &sub); err != nil {
		log.Printf("error unmarshaling submission: %v", err)
		return
	}
	sub.Normalize()

	result := s.judgeAndStore(ctx, sub)
	if result != nil {
		s.publish(result, producer)
		log.Printf("judged submission %s: %s", sub.ID, result.Verdict)
	}
}

// judgeAndStore validates sub, loads its test cases, judges it, and
// persists the result, returning the result so the caller can publish
// it. Split out from processSubmission so it can be exercised without a
// live Kafka producer.
func (s *JudgingService) judgeAndStore(ctx context.Context, sub model.Submission) *model.JudgeResult {
	// The decoded submission need not carry test cases: they are loaded
	// from the result store below, and an empty set is rejected there.
	// Validate checks test_cases last, so that field failing alone means
	// every other field is valid.
	if err := sub.Validate(); err != nil {
		var ve *model.ValidationError
		if !errors.As(err, &ve) || ve.Field != "test_cases" {
			log.Printf("rejecting submission %s: %v", sub.ID, err)
			return s.errorResult(sub.ID, err)
		}
	}

	log.Printf("judging submission %s for problem %s", sub.ID, sub.ProblemID)

	cases, err := s.db.GetTestCases(sub.ProblemID)
	if err != nil {
		log.Printf("error loading test cases: %v", err)
		return s.errorResult(sub.ID, err)
	}
	if len(cases) == 0 {
		err := fmt.Errorf("no test cases registered for problem %s", sub.ProblemID)
		log.Printf("%v", err)
		return s.errorResult(sub.ID, err)
	}
	sub.Cases = cases

	start := time.Now()
	result := s.judge.Judge(ctx, &sub)
	metrics.RecordJudgingOperation(string(sub.Language), string(result.Verdict), sub.ProblemID)
	metrics.ObserveJudgingDuration(string(sub.Language), sub.ProblemID, time.Since(start).Seconds())
	metrics.ObserveCodeExecutionMemoryUsage(string(sub.Language), sub.ProblemID, result.MemoryUsedKB*1024)
	for _, cr := range result.CaseResults {
		metrics.RecordTestCaseResult(sub.ProblemID, string(cr.Verdict))
	}

	if err := s.db.SaveJudgeResult(result); err != nil {
		log.Printf("error saving judge result: %v", err)
	}
	return result
}

func (s *JudgingService) errorResult(submissionID string, err error) *model.JudgeResult {
	result := &model.JudgeResult{
		SubmissionID: submissionID,
		Verdict:      model.VerdictSystemError,
		ErrorMessage: err.Error(),
		JudgedAt:     time.Now(),
	}
	if dbErr := s.db.SaveJudgeResult(result); dbErr != nil {
		log.Printf("error saving error result: %v", dbErr)
	}
	return result
}

func (s *JudgingService) publish(result *model.JudgeResult, producer *kafkalib.Producer) {
	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("error marshaling judge result: %v", err)
		return
	}
	if err := producer.Produce(result.SubmissionID, payload); err != nil {
		log.Printf("error producing judge result: %v", err)
		return
	}
	metrics.RecordKafkaMessage("judge-engine", s.cfg.KafkaResultTopic, "produce")
}
