package screen

import (
	"strings"
	"unicode/utf8"

	"github.com/predict-win/internal/domain"
	"github.com/predict-win/internal/route"
)

// Login steps
const (
	StepPhone = "phone"
	StepOTP   = "otp"
)

const (
	minPhoneLength = 10
	minOTPLength   = 4
)

// Login simulates phone and OTP entry. No code is ever sent or checked.
type Login struct {
	base
	step    string
	phone   string
	agreed  bool
	loading bool
}

// LoginView is the rendered login screen
type LoginView struct {
	Step    string `json:"step"`
	Phone   string `json:"phone,omitempty"`
	Agreed  bool   `json:"agreed"`
	Loading bool   `json:"loading"`
}

// NewLogin starts at the phone number step
func NewLogin(env Env) *Login {
	l := &Login{step: StepPhone}
	l.init(env)
	return l
}

// Name identifies the screen
func (l *Login) Name() route.Screen { return route.ScreenLogin }

// View renders the screen state
func (l *Login) View() any {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoginView{Step: l.step, Phone: l.phone, Agreed: l.agreed, Loading: l.loading}
}

// SendOTP validates the phone entry and moves to OTP entry after a delay
func (l *Login) SendOTP(phone string, agreed bool) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loading {
		return Result{}, domain.ErrRequestInFlight
	}
	phone = strings.TrimSpace(phone)
	if utf8.RuneCountInString(phone) < minPhoneLength {
		return Result{}, domain.ErrInvalidPhone
	}
	if !agreed {
		return Result{}, domain.ErrTermsNotAccepted
	}

	l.phone = phone
	l.agreed = agreed
	l.loading = true
	l.after(l.env.Timing.OTPSend, func() func() {
		l.loading = false
		l.step = StepOTP
		return func() {
			l.env.Hooks.notify(domain.NewNotice(domain.NoticeSuccess, "OTPSent", nil))
		}
	})
	return Result{}, nil
}

// Verify accepts any code of sufficient length and continues to profile
// setup after a delay
func (l *Login) Verify(otp string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loading {
		return Result{}, domain.ErrRequestInFlight
	}
	if l.step != StepOTP || utf8.RuneCountInString(strings.TrimSpace(otp)) < minOTPLength {
		return Result{}, domain.ErrInvalidOTP
	}

	l.loading = true
	l.after(l.env.Timing.OTPVerify, func() func() {
		l.loading = false
		return func() { l.env.Hooks.navigate(route.PathProfileSetup) }
	})
	return Result{}, nil
}

// ChangePhone returns to phone entry
func (l *Login) ChangePhone() (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loading {
		return Result{}, domain.ErrRequestInFlight
	}
	l.step = StepPhone
	return Result{}, nil
}
