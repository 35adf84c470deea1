// internal/i18n/i18n.go
package i18n

import (
	"fmt"
	"sync"
)

type I18n struct {
	mu           sync.RWMutex
	translations map[string]map[string]string
	defaultLang  string
}

var instance *I18n
var once sync.Once

func Initialize() error {
	once.Do(func() {
		instance = &I18n{
			translations: map[string]map[string]string{
				"en": enTranslations,
				"ko": koTranslations,
			},
			defaultLang: "en",
		}
	})
	return nil
}

func (i *I18n) T(lang, key string, args ...interface{}) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if translations, exists := i.translations[lang]; exists {
		if text, exists := translations[key]; exists {
			if len(args) > 0 {
				return fmt.Sprintf(text, args...)
			}
			return text
		}
	}

	// Fallback to default language
	if lang != i.defaultLang {
		if translations, exists := i.translations[i.defaultLang]; exists {
			if text, exists := translations[key]; exists {
				if len(args) > 0 {
					return fmt.Sprintf(text, args...)
				}
				return text
			}
		}
	}

	// Last resort: return the key itself
	return key
}

func T(lang, key string, args ...interface{}) string {
	if instance == nil {
		Initialize()
	}
	return instance.T(lang, key, args...)
}

func SupportedLanguages() []string {
	return []string{"en", "ko"}
}

var enTranslations = map[string]string{
	KeySuccess: "Success",
	KeyError:   "Error",

	KeyAuthRequired:           "Authentication required",
	KeyAuthInvalidToken:       "Invalid or expired token",
	KeyAuthInvalidCredentials: "Invalid email or password",
	KeyAuthUserExists:         "A user with this email or username already exists",
	KeyAuthRegisterSuccess:    "Registration successful",
	KeyAuthLoginSuccess:       "Login successful",

	KeyUserProfileUpdated: "Profile updated",
	KeyUserNotFound:       "User not found",
	KeyUserPromoted:       "User promoted to admin",
	KeyUserDemoted:        "User demoted to regular user",

	KeyProductCreated:      "Product submitted for review",
	KeyProductUpdated:      "Product updated",
	KeyProductDeleted:      "Product deleted",
	KeyProductNotFound:     "Product not found",
	KeyProductApproved:     "Product approved",
	KeyProductRejected:     "Product rejected",
	KeyProductStoreInvalid: "Store %s is not an approved store",

	KeyStoreCreated:   "Store submitted for review",
	KeyStoreUpdated:   "Store updated",
	KeyStoreDeleted:   "Store deleted",
	KeyStoreNotFound:  "Store not found",
	KeyStoreApproved:  "Store approved",
	KeyStoreRejected:  "Store rejected",
	KeyStoreNameTaken: "Store name %s is already taken",

	KeyUpdateSubmitted: "Update submitted for review",
	KeyUpdateApproved:  "Update approved and applied",
	KeyUpdateRejected:  "Update rejected",
	KeyUpdateNotFound:  "Update submission not found",
	KeyUpdateDecided:   "Update submission has already been decided",

	KeyUploadTicketIssued:   "Upload ticket issued",
	KeyUploadConfirmed:      "Upload confirmed",
	KeyUploadTicketNotFound: "Upload ticket not found",
	KeyUploadNotFound:       "Upload ticket not found",
	KeyUploadTicketExpired:  "Upload ticket has expired",
	KeyUploadTicketUsed:     "Upload ticket has already been used",
	KeyUploadInvalidURL:     "Uploaded file URL is not allowed",

	KeyAdminActionSuccess: "Action completed",
	KeyAdminAccessDenied:  "Admin access required",

	KeyValidationRequired: "%s is required",
	KeyValidationInvalid:  "Invalid %s",

	KeyErrorInternal:  "Internal server error",
	KeyErrorRateLimit: "Too many requests, please try again later",
}

var koTranslations = map[string]string{
	KeySuccess: "성공",
	KeyError:   "오류",

	KeyAuthRequired:           "로그인이 필요합니다",
	KeyAuthInvalidToken:       "유효하지 않거나 만료된 토큰입니다",
	KeyAuthInvalidCredentials: "이메일 또는 비밀번호가 올바르지 않습니다",
	KeyAuthUserExists:         "이미 사용 중인 이메일 또는 사용자 이름입니다",
	KeyAuthRegisterSuccess:    "회원가입이 완료되었습니다",
	KeyAuthLoginSuccess:       "로그인되었습니다",

	KeyUserProfileUpdated: "프로필이 수정되었습니다",
	KeyUserNotFound:       "사용자를 찾을 수 없습니다",
	KeyUserPromoted:       "관리자로 승격되었습니다",
	KeyUserDemoted:        "일반 사용자로 변경되었습니다",

	KeyProductCreated:      "상품이 검토 대기열에 등록되었습니다",
	KeyProductUpdated:      "상품이 수정되었습니다",
	KeyProductDeleted:      "상품이 삭제되었습니다",
	KeyProductNotFound:     "상품을 찾을 수 없습니다",
	KeyProductApproved:     "상품이 승인되었습니다",
	KeyProductRejected:     "상품이 거절되었습니다",
	KeyProductStoreInvalid: "%s 은(는) 승인된 판매처가 아닙니다",

	KeyStoreCreated:   "판매처가 검토 대기열에 등록되었습니다",
	KeyStoreUpdated:   "판매처가 수정되었습니다",
	KeyStoreDeleted:   "판매처가 삭제되었습니다",
	KeyStoreNotFound:  "판매처를 찾을 수 없습니다",
	KeyStoreApproved:  "판매처가 승인되었습니다",
	KeyStoreRejected:  "판매처가 거절되었습니다",
	KeyStoreNameTaken: "이미 사용 중인 판매처 이름입니다: %s",

	KeyUpdateSubmitted: "수정 제안이 검토 대기열에 등록되었습니다",
	KeyUpdateApproved:  "수정 제안이 승인되어 반영되었습니다",
	KeyUpdateRejected:  "수정 제안이 거절되었습니다",
	KeyUpdateNotFound:  "수정 제안을 찾을 수 없습니다",
	KeyUpdateDecided:   "이미 처리된 수정 제안입니다",

	KeyUploadTicketIssued:   "업로드 티켓이 발급되었습니다",
	KeyUploadConfirmed:      "업로드가 확인되었습니다",
	KeyUploadTicketNotFound: "업로드 티켓을 찾을 수 없습니다",
	KeyUploadNotFound:       "업로드 티켓을 찾을 수 없습니다",
	KeyUploadTicketExpired:  "업로드 티켓이 만료되었습니다",
	KeyUploadTicketUsed:     "이미 사용된 업로드 티켓입니다",
	KeyUploadInvalidURL:     "허용되지 않은 파일 URL입니다",

	KeyAdminActionSuccess: "처리되었습니다",
	KeyAdminAccessDenied:  "관리자 권한이 필요합니다",

	KeyValidationRequired: "%s 은(는) 필수 항목입니다",
	KeyValidationInvalid:  "유효하지 않은 %s 입니다",

	KeyErrorInternal:  "서버 내부 오류가 발생했습니다",
	KeyErrorRateLimit: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요",
}
