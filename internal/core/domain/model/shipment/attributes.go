package shipment

import (
	"errors"

	"parcelbridge/internal/pkg/errs"
	"parcelbridge/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when attempting to use an improperly initialized Contact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact")

// Contact holds one party of a shipment, sender or recipient.
// The country is not part of the contact input: it is derived from the
// shipment direction when the aggregate is built, so stored country fields
// can never disagree with the corridor.
type Contact struct { //nolint:recvcheck //using for validation
	name    string
	phone   string
	address string
	country string
	guard   guard.ConstructorGuard
}

// NewContact creates a contact with the mandatory party details.
func NewContact(name, phone, address string) (Contact, error) {
	contact := Contact{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		contact.setName(name),
		contact.setPhone(phone),
		contact.setAddress(address),
	); err != nil {
		return Contact{}, err
	}

	return contact, nil
}

// RestoreContact reconstructs a contact from persistence with its stored country.
func RestoreContact(name, phone, address, country string) (Contact, error) {
	contact, err := NewContact(name, phone, address)
	if err != nil {
		return Contact{}, err
	}

	contact.country = country
	return contact, nil
}

// Name returns the contact person's name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Address returns the street address.
func (c Contact) Address() string {
	return c.address
}

// Country returns the ISO country code derived from the shipment direction.
func (c Contact) Country() string {
	return c.country
}

// Validate checks that the contact was created through a constructor.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c *Contact) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Contact) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *Contact) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}

func (c *Contact) inCountry(country string) Contact {
	copied := *c
	copied.country = country
	return copied
}

// ServiceType selects the delivery speed a customer paid for.
type ServiceType int

const (
	// ServiceTypeUnknown represents an invalid or undefined service type.
	ServiceTypeUnknown ServiceType = iota
	// ServiceStandard is the default multi-day service.
	ServiceStandard
	// ServiceExpress is the priority service.
	ServiceExpress
)

func getServiceTypeNames() map[ServiceType]string {
	return map[ServiceType]string{
		ServiceStandard: "STANDARD",
		ServiceExpress:  "EXPRESS",
	}
}

// Validate checks that the service type is known.
func (s ServiceType) Validate() error {
	if _, ok := getServiceTypeNames()[s]; !ok {
		return errs.NewValueIsInvalidError("serviceType")
	}
	return nil
}

// String returns the wire name of the service type.
func (s ServiceType) String() string {
	if name, ok := getServiceTypeNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ServiceTypeFromName parses a wire service type name.
func ServiceTypeFromName(name string) (ServiceType, error) {
	for serviceType, serviceTypeName := range getServiceTypeNames() {
		if serviceTypeName == name {
			return serviceType, nil
		}
	}
	return ServiceTypeUnknown, errs.NewValueIsInvalidError("serviceType")
}

// PaymentMethod records how the customer pays for carriage.
type PaymentMethod int

const (
	// PaymentMethodUnknown represents an invalid or undefined payment method.
	PaymentMethodUnknown PaymentMethod = iota
	// PaymentPrepaid means carriage was paid online at booking time.
	PaymentPrepaid
	// PaymentCash means carriage is paid in cash at intake.
	PaymentCash
	// PaymentCredit means carriage is settled on a corporate account.
	PaymentCredit
	// PaymentCOD means carriage is collected from the recipient on delivery.
	PaymentCOD
)

func getPaymentMethodNames() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentPrepaid: "PREPAID",
		PaymentCash:    "CASH",
		PaymentCredit:  "CREDIT",
		PaymentCOD:     "COD",
	}
}

// Validate checks that the payment method is known.
func (p PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodNames()[p]; !ok {
		return errs.NewValueIsInvalidError("paymentMethod")
	}
	return nil
}

// String returns the wire name of the payment method.
func (p PaymentMethod) String() string {
	if name, ok := getPaymentMethodNames()[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// PaymentMethodFromName parses a wire payment method name.
func PaymentMethodFromName(name string) (PaymentMethod, error) {
	for method, methodName := range getPaymentMethodNames() {
		if methodName == name {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidError("paymentMethod")
}

// PaymentStatus tracks settlement of the carriage charge.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota
	// PaymentPending means the charge is not settled yet.
	PaymentPending
	// PaymentPaid means the charge is settled.
	PaymentPaid
	// PaymentRefunded means the charge was returned to the customer.
	PaymentRefunded
)

func getPaymentStatusNames() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentPending:  "PENDING",
		PaymentPaid:     "PAID",
		PaymentRefunded: "REFUNDED",
	}
}

// Validate checks that the payment status is known.
func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusNames()[p]; !ok {
		return errs.NewValueIsInvalidError("paymentStatus")
	}
	return nil
}

// String returns the wire name of the payment status.
func (p PaymentStatus) String() string {
	if name, ok := getPaymentStatusNames()[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// PaymentStatusFromName parses a wire payment status name.
func PaymentStatusFromName(name string) (PaymentStatus, error) {
	for status, statusName := range getPaymentStatusNames() {
		if statusName == name {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidError("paymentStatus")
}

// Currency is the declared value currency of a parcel.
type Currency string

const (
	// CurrencyBDT is the Bangladeshi taka.
	CurrencyBDT Currency = "BDT"
	// CurrencyHKD is the Hong Kong dollar.
	CurrencyHKD Currency = "HKD"
	// CurrencyUSD is the United States dollar.
	CurrencyUSD Currency = "USD"
)

// Validate checks that the currency is one of the supported codes.
func (c Currency) Validate() error {
	switch c {
	case CurrencyBDT, CurrencyHKD, CurrencyUSD:
		return nil
	default:
		return errs.NewValueIsInvalidError("currency")
	}
}
