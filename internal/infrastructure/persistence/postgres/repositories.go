package postgres

import (
	"github.com/agrobank/financing-service/internal/domain/port"
	"github.com/agrobank/financing-service/pkg/events"
	pgdb "github.com/agrobank/financing-service/pkg/postgres"
)

// repoSet bundles the repositories of one unit of work. All of them share the
// same Querier, so every mutation lands in the same transaction.
type repoSet struct {
	applications *ApplicationRepo
	schedules    *ScheduleRepo
	records      *RecordRepo
	contracts    *ContractRepo
	groups       *GroupRepo
	timeline     *TimelineRepo
	collector    *events.Collector
}

func newRepoSet(q pgdb.Querier) *repoSet {
	return &repoSet{
		applications: NewApplicationRepo(q),
		schedules:    NewScheduleRepo(q),
		records:      NewRecordRepo(q),
		contracts:    NewContractRepo(q),
		groups:       NewGroupRepo(q),
		timeline:     NewTimelineRepo(q),
		collector:    &events.Collector{},
	}
}

func (s *repoSet) Applications() port.ApplicationRepository { return s.applications }
func (s *repoSet) Schedules() port.ScheduleRepository       { return s.schedules }
func (s *repoSet) Records() port.RecordRepository           { return s.records }
func (s *repoSet) Contracts() port.ContractRepository       { return s.contracts }
func (s *repoSet) Groups() port.GroupRepository             { return s.groups }
func (s *repoSet) Timeline() port.TimelineRepository        { return s.timeline }
func (s *repoSet) Events() *events.Collector                { return s.collector }
