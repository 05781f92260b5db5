package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/pkg/errors"
)

type firestoreKycRepository struct {
	client *firestore.Client
}

func NewFirestoreKycRepository(client *firestore.Client) repository.KycRepository {
	return &firestoreKycRepository{
		client: client,
	}
}

func (r *firestoreKycRepository) Create(ctx context.Context, request *entity.KycRequest) error {
	if request.ID == "" {
		request.ID = r.client.Collection("kyc_requests").NewDoc().ID
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	_, err := r.client.Collection("kyc_requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create KYC request", err)
	}

	return nil
}

func (r *firestoreKycRepository) GetByID(ctx context.Context, id string) (*entity.KycRequest, error) {
	doc, err := r.client.Collection("kyc_requests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("KYC request", err)
		}
		return nil, errors.Internal("Failed to get KYC request", err)
	}

	var request entity.KycRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse KYC request", err)
	}

	return &request, nil
}

func (r *firestoreKycRepository) GetPendingByUser(ctx context.Context, userID string) (*entity.KycRequest, error) {
	query := r.client.Collection("kyc_requests").
		Where("userId", "==", userID).
		Where("status", "==", entity.KycRequestPending).
		Limit(1)

	iter := query.Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("KYC request", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to look up pending KYC request", err)
	}

	var request entity.KycRequest
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse KYC request", err)
	}

	return &request, nil
}

func (r *firestoreKycRepository) Update(ctx context.Context, request *entity.KycRequest) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection("kyc_requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update KYC request", err)
	}

	return nil
}

func (r *firestoreKycRepository) ListPending(ctx context.Context, limit, offset int) ([]*entity.KycRequest, int64, error) {
	query := r.client.Collection("kyc_requests").Where("status", "==", entity.KycRequestPending)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count pending KYC requests", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []*entity.KycRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate KYC requests", err)
		}

		var request entity.KycRequest
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse KYC request", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}
