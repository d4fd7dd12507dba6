package service

import (
	"legalpad/internal/contract"
	"legalpad/internal/domain/entity"
	"legalpad/internal/domain/sqlite/repository"
	"legalpad/internal/utils"
	"legalpad/internal/utils/apierror"
	"legalpad/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	suggestionLimit = 10
)

type ClientRepository interface {
	FindActiveByID(ownerID, id int64) (*entity.Client, error)
	Search(ownerID int64, q *repository.ClientSearch) ([]*entity.Client, int64, error)
	Suggest(ownerID int64, q string, limit int) ([]*entity.Client, error)
	ExistsCaseNumber(ownerID int64, caseNumber string, excludeID int64) (bool, error)
	Save(client *entity.Client) error
	AddNote(note *entity.ClientNote) error
}

type DefaultClientService struct {
	ClientRepo ClientRepository
	Validate   *validator.Validate
}

func NewClientService(clientRepo ClientRepository, validate *validator.Validate) *DefaultClientService {
	return &DefaultClientService{ClientRepo: clientRepo, Validate: validate}
}

func (s *DefaultClientService) ListClients(actor *entity.User, q *contract.ClientListQuery) ([]*contract.ClientResponse, *contract.Pagination, apierror.ErrorResponse) {
	page, limit := normalizePage(q.Page, q.Limit)

	search := &repository.ClientSearch{
		Search:    q.Search,
		Status:    q.Status,
		CaseType:  q.CaseType,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      page,
		Limit:     limit,
	}

	clients, total, err := s.ClientRepo.Search(actor.ID, search)
	if err != nil {
		log.Errorf("failed to list clients for owner %d: %v", actor.ID, err)
		return nil, nil, apierror.InternalServerError
	}

	resp := make([]*contract.ClientResponse, len(clients))
	for i, client := range clients {
		resp[i] = toClientResponse(client)
	}
	return resp, contract.NewPagination(page, limit, total), nil
}

func (s *DefaultClientService) GetClient(actor *entity.User, id int64) (*contract.ClientResponse, apierror.ErrorResponse) {
	client, err := s.ClientRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch client %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if client == nil {
		return nil, apierror.NotFoundError
	}
	return toClientResponse(client), nil
}

func (s *DefaultClientService) CreateClient(actor *entity.User, req *contract.ClientRequest) (*contract.ClientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	if apierr := s.checkCaseNumber(actor.ID, req.CaseNumber, 0); apierr != nil {
		return nil, apierr
	}

	now := utils.NowUTC()
	client := &entity.Client{
		ID:              uid.Generate(),
		OwnerID:         actor.ID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		AlternatePhone:  req.AlternatePhone,
		CaseType:        entity.CaseType(req.CaseType),
		CaseNumber:      req.CaseNumber,
		CaseDescription: req.CaseDescription,
		Status:          entity.ClientStatusActive,
		Priority:        entity.PriorityMedium,
		Lifecycle:       entity.LifecycleActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if req.Status != "" {
		client.Status = entity.ClientStatus(req.Status)
	}
	if req.Priority != "" {
		client.Priority = entity.Priority(req.Priority)
	}
	if req.RetainerFee != nil {
		client.RetainerFee = *req.RetainerFee
	}
	if req.HourlyRate != nil {
		client.HourlyRate = *req.HourlyRate
	}
	applyAddress(client, req.Address)

	if err := s.ClientRepo.Save(client); err != nil {
		log.Errorf("failed to create client for owner %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}
	return toClientResponse(client), nil
}

func (s *DefaultClientService) UpdateClient(actor *entity.User, id int64, req *contract.UpdateClientRequest) (*contract.ClientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	client, err := s.ClientRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch client %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if client == nil {
		return nil, apierror.NotFoundError
	}

	if req.CaseNumber != nil && *req.CaseNumber != client.CaseNumber {
		if apierr := s.checkCaseNumber(actor.ID, *req.CaseNumber, client.ID); apierr != nil {
			return nil, apierr
		}
		client.CaseNumber = *req.CaseNumber
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.AlternatePhone != nil {
		client.AlternatePhone = *req.AlternatePhone
	}
	if req.CaseType != nil {
		client.CaseType = entity.CaseType(*req.CaseType)
	}
	if req.CaseDescription != nil {
		client.CaseDescription = *req.CaseDescription
	}
	if req.Status != nil {
		client.Status = entity.ClientStatus(*req.Status)
	}
	if req.Priority != nil {
		client.Priority = entity.Priority(*req.Priority)
	}
	if req.RetainerFee != nil {
		client.RetainerFee = *req.RetainerFee
	}
	if req.HourlyRate != nil {
		client.HourlyRate = *req.HourlyRate
	}
	if req.TotalBilled != nil {
		client.TotalBilled = *req.TotalBilled
	}
	applyAddress(client, req.Address)
	client.UpdatedAt = utils.NowUTC()

	if serr := s.ClientRepo.Save(client); serr != nil {
		log.Errorf("failed to update client %d: %v", client.ID, serr)
		return nil, apierror.InternalServerError
	}
	return toClientResponse(client), nil
}

func (s *DefaultClientService) DeleteClient(actor *entity.User, id int64) apierror.ErrorResponse {
	client, err := s.ClientRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch client %d: %v", id, err)
		return apierror.InternalServerError
	}
	if client == nil {
		return apierror.NotFoundError
	}

	client.Lifecycle = entity.LifecycleDeleted
	client.UpdatedAt = utils.NowUTC()

	if serr := s.ClientRepo.Save(client); serr != nil {
		log.Errorf("failed to delete client %d: %v", client.ID, serr)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultClientService) AddClientNote(actor *entity.User, id int64, req *contract.ClientNotePayload) (*contract.ClientResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	client, err := s.ClientRepo.FindActiveByID(actor.ID, id)
	if err != nil {
		log.Errorf("failed to fetch client %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if client == nil {
		return nil, apierror.NotFoundError
	}

	note := &entity.ClientNote{
		ID:        uid.Generate(),
		ClientID:  client.ID,
		Content:   req.Content,
		CreatedAt: utils.NowUTC(),
	}
	if serr := s.ClientRepo.AddNote(note); serr != nil {
		log.Errorf("failed to add note to client %d: %v", client.ID, serr)
		return nil, apierror.InternalServerError
	}

	client.Notes = append(client.Notes, *note)
	return toClientResponse(client), nil
}

func (s *DefaultClientService) Suggestions(actor *entity.User, query string) ([]*contract.ClientSuggestion, apierror.ErrorResponse) {
	if len(query) < 2 {
		return []*contract.ClientSuggestion{}, nil
	}

	clients, err := s.ClientRepo.Suggest(actor.ID, query, suggestionLimit)
	if err != nil {
		log.Errorf("failed to fetch client suggestions for owner %d: %v", actor.ID, err)
		return nil, apierror.InternalServerError
	}

	suggestions := make([]*contract.ClientSuggestion, len(clients))
	for i, client := range clients {
		suggestions[i] = &contract.ClientSuggestion{
			ID:         client.ID,
			Name:       client.Name,
			Phone:      client.Phone,
			CaseNumber: client.CaseNumber,
		}
	}
	return suggestions, nil
}

func (s *DefaultClientService) checkCaseNumber(ownerID int64, caseNumber string, excludeID int64) apierror.ErrorResponse {
	taken, err := s.ClientRepo.ExistsCaseNumber(ownerID, caseNumber, excludeID)
	if err != nil {
		log.Errorf("failed to check case number for owner %d: %v", ownerID, err)
		return apierror.InternalServerError
	}

	if taken {
		return apierror.DuplicateCaseNumberError
	}
	return nil
}

func applyAddress(client *entity.Client, addr *contract.AddressPayload) {
	if addr == nil {
		return
	}
	client.Street = addr.Street
	client.City = addr.City
	client.State = addr.State
	client.ZipCode = addr.ZipCode
	client.Country = addr.Country
}

func toClientResponse(client *entity.Client) *contract.ClientResponse {
	resp := &contract.ClientResponse{
		ID:              client.ID,
		Name:            client.Name,
		Email:           client.Email,
		Phone:           client.Phone,
		AlternatePhone:  client.AlternatePhone,
		CaseType:        string(client.CaseType),
		CaseNumber:      client.CaseNumber,
		CaseDescription: client.CaseDescription,
		Status:          string(client.Status),
		Priority:        string(client.Priority),
		RetainerFee:     client.RetainerFee,
		HourlyRate:      client.HourlyRate,
		TotalBilled:     client.TotalBilled,
		CreatedAt:       utils.FormatEpoch(client.CreatedAt),
		UpdatedAt:       utils.FormatEpoch(client.UpdatedAt),
	}

	if client.Street != "" || client.City != "" || client.State != "" || client.ZipCode != "" || client.Country != "" {
		resp.Address = &contract.AddressPayload{
			Street:  client.Street,
			City:    client.City,
			State:   client.State,
			ZipCode: client.ZipCode,
			Country: client.Country,
		}
	}
	for _, note := range client.Notes {
		resp.Notes = append(resp.Notes, &contract.ClientNoteResponse{
			ID:        note.ID,
			Content:   note.Content,
			CreatedAt: utils.FormatEpoch(note.CreatedAt),
		})
	}
	return resp
}

func toClientSummary(client *entity.Client) *contract.ClientSummary {
	return &contract.ClientSummary{
		ID:    client.ID,
		Name:  client.Name,
		Phone: client.Phone,
		Email: client.Email,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
