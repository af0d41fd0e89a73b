package create_booking

// Request модель запроса на создание бронирования
type Request struct {
	Postcode       string  // Postcode адреса уборки
	CustomerID     *int64  // ID пользователя из X-User-ID (опционально)
	PhoneNumber    *string // Телефон клиента (опционально, вместе с CustomerID)
	ServiceAddress *string // Адрес уборки (опционально)
}
