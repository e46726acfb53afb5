package out

import (
	"context"

	"studybuddy/internal/modules/analytics/domain"
	analyticsout "studybuddy/internal/modules/analytics/port/out"
	studyin "studybuddy/internal/modules/study/port/in"
)

type StudyDatasetAdapter struct {
	study studyin.Usecase
}

func NewStudyDatasetAdapter(study studyin.Usecase) analyticsout.DatasetSource {
	return &StudyDatasetAdapter{study: study}
}

func (a *StudyDatasetAdapter) Dataset(ctx context.Context) (domain.Dataset, error) {
	doc, err := a.study.Document(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	ds := domain.Dataset{
		Streak:     doc.Streak,
		TotalHours: doc.TotalHours,
		Plans:      make([]domain.PlanRecord, 0, len(doc.Plans)),
		Sessions:   make([]domain.SessionRecord, 0, len(doc.Sessions)),
	}
	for _, p := range doc.Plans {
		ds.Plans = append(ds.Plans, domain.PlanRecord{Completed: p.Completed})
	}
	for _, s := range doc.Sessions {
		ds.Sessions = append(ds.Sessions, domain.SessionRecord{Day: s.Date, Minutes: s.Duration, At: s.Timestamp})
	}
	return ds, nil
}
