package commonerrors

import "net/http"

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidJWTSecret = NewDomainError(
		"INVALID_JWT_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"JWT_SECRET must be at least 32 bytes",
	)

	ErrUserNotFound = NewDomainError(
		"USER_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrEmptyOpenID = NewDomainError(
		"EMPTY_OPEN_ID",
		CategoryValidation,
		http.StatusBadRequest,
		"open_id is required",
	)

	ErrUsernameLength = NewDomainError(
		"USERNAME_LENGTH",
		CategoryValidation,
		http.StatusBadRequest,
		"username length is out of range",
	)

	ErrRoomNotFound = NewDomainError(
		"ROOM_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"room not found",
	)

	ErrInvalidRoomCode = NewDomainError(
		"INVALID_ROOM_CODE",
		CategoryValidation,
		http.StatusBadRequest,
		"room code must be six digits",
	)

	ErrRoomCodeSpaceExhausted = NewDomainError(
		"ROOM_CODE_SPACE_EXHAUSTED",
		CategoryConflict,
		http.StatusConflict,
		"could not allocate a unique room code",
	)

	ErrRoomClosed = NewDomainError(
		"ROOM_CLOSED",
		CategoryForbidden,
		http.StatusForbidden,
		"room is closed",
	)

	ErrNotRoomOwner = NewDomainError(
		"NOT_ROOM_OWNER",
		CategoryPermission,
		http.StatusForbidden,
		"only the room owner may perform this action",
	)

	ErrNotRoomMember = NewDomainError(
		"NOT_ROOM_MEMBER",
		CategoryForbidden,
		http.StatusForbidden,
		"user is not an active member of the room",
	)

	ErrMembershipNotFound = NewDomainError(
		"MEMBERSHIP_NOT_FOUND",
		CategoryNotFound,
		http.StatusNotFound,
		"no open membership for this room and user",
	)

	ErrFromUserMismatch = NewDomainError(
		"TRANSFER_FROM_MISMATCH",
		CategoryPermission,
		http.StatusForbidden,
		"transfers may only be recorded on the caller's own behalf",
	)

	ErrTransferSameUser = NewDomainError(
		"TRANSFER_SAME_USER",
		CategoryValidation,
		http.StatusBadRequest,
		"source and destination users must differ",
	)

	ErrAmountNotPositive = NewDomainError(
		"TRANSFER_AMOUNT_NOT_POSITIVE",
		CategoryValidation,
		http.StatusBadRequest,
		"transfer amount must be positive",
	)

	ErrAmountTooLarge = NewDomainError(
		"TRANSFER_AMOUNT_TOO_LARGE",
		CategoryValidation,
		http.StatusBadRequest,
		"transfer amount exceeds the allowed ceiling",
	)

	ErrInvalidAmount = NewDomainError(
		"INVALID_AMOUNT",
		CategoryValidation,
		http.StatusBadRequest,
		"amount must be a decimal with at most two fraction digits",
	)

	ErrInvalidToken = NewDomainError(
		"INVALID_TOKEN",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrMissingAuthorization = NewDomainError(
		"MISSING_AUTHORIZATION",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"missing or invalid authorization",
	)

	ErrStoreUnavailable = NewDomainError(
		"STORE_UNAVAILABLE",
		CategoryExternal,
		http.StatusServiceUnavailable,
		"storage is temporarily unavailable",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
