package workers

import (
	"context"
	"log"
	"time"

	"github.com/petsuhq/petsu-backend/internal/metrics"
	"github.com/petsuhq/petsu-backend/internal/services/consultation"
)

// StartConsultationExpirer periodically moves pending consultations past
// their deadline to expired. This is the server-side enforcement of the
// consultation wait window.
func StartConsultationExpirer(svc *consultation.Service, interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				expired, err := svc.ExpireStale(context.Background())
				if err != nil {
					log.Printf("expirer: failed to expire consultations: %v", err)
					continue
				}
				if expired > 0 {
					metrics.ConsultationsExpired.Add(float64(expired))
					log.Printf("expirer: expired %d consultation(s)", expired)
				}
			case <-stop:
				return
			}
		}
	}()
}
