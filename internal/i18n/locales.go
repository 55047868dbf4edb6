// internal/i18n/locales.go
package i18n

var localeEN = map[string]string{
	KeySuccess: "Success",
	KeyError:   "Something went wrong",

	KeyAuthRequired:           "Authentication required",
	KeyAuthInvalidToken:       "Invalid token",
	KeyAuthTokenExpired:       "Token has expired",
	KeyAuthInvalidCredentials: "Invalid username or password",
	KeyAuthUserExists:         "User already exists",
	KeyAuthLoginSuccess:       "Logged in successfully",
	KeyAuthRegisterSuccess:    "Registered successfully",
	KeyAccessDenied:           "Access denied",

	KeyUserNotFound: "User not found",
	KeyUserBanned:   "User is banned until %s",
	KeyUserUpdated:  "User updated",

	KeyGameCreated:      "Game created",
	KeyGameUpdated:      "Game updated",
	KeyGameDeleted:      "Game deleted",
	KeyGameNotFound:     "Game not found",
	KeyGameKeyTaken:     "Game key is already taken",
	KeyGameOutOfStock:   "Game is out of stock",
	KeyGameDownloadSent: "Download link has been sent",

	KeyGenreNotFound:     "Genre not found",
	KeyGenreExists:       "Genre already exists",
	KeyPlatformNotFound:  "Platform not found",
	KeyPublisherNotFound: "Publisher not found",
	KeyPublisherExists:   "Publisher already exists",

	KeyCommentAdded:    "Comment added",
	KeyCommentDeleted:  "Comment deleted",
	KeyCommentNotFound: "Comment not found",
	KeyCommentBanned:   "Comment author has been banned",

	KeyOrderNotFound:     "Order not found",
	KeyOrderEmpty:        "Basket is empty",
	KeyOrderPaid:         "Order has been paid",
	KeyOrderShipped:      "Order has been shipped",
	KeyBasketItemAdded:   "Item added to basket",
	KeyBasketItemRemoved: "Item removed from basket",
	KeyPaymentFailed:     "Payment failed",
	KeyInvoiceReady:      "Invoice is ready",

	KeyFileUploadSuccess: "File uploaded successfully",
	KeyFileUploadFailed:  "File upload failed",

	KeyValidationInvalid: "Validation failed",
	KeyRateLimited:       "Too many requests, try again later",
}

var localeUK = map[string]string{
	KeySuccess: "Успішно",
	KeyError:   "Щось пішло не так",

	KeyAuthRequired:           "Потрібна автентифікація",
	KeyAuthInvalidToken:       "Недійсний токен",
	KeyAuthTokenExpired:       "Термін дії токена закінчився",
	KeyAuthInvalidCredentials: "Невірне ім'я користувача або пароль",
	KeyAuthUserExists:         "Користувач вже існує",
	KeyAuthLoginSuccess:       "Вхід виконано успішно",
	KeyAuthRegisterSuccess:    "Реєстрація пройшла успішно",
	KeyAccessDenied:           "Доступ заборонено",

	KeyUserNotFound: "Користувача не знайдено",
	KeyUserBanned:   "Користувача заблоковано до %s",
	KeyUserUpdated:  "Користувача оновлено",

	KeyGameCreated:      "Гру створено",
	KeyGameUpdated:      "Гру оновлено",
	KeyGameDeleted:      "Гру видалено",
	KeyGameNotFound:     "Гру не знайдено",
	KeyGameKeyTaken:     "Ключ гри вже зайнятий",
	KeyGameOutOfStock:   "Гра відсутня на складі",
	KeyGameDownloadSent: "Посилання на завантаження надіслано",

	KeyGenreNotFound:     "Жанр не знайдено",
	KeyGenreExists:       "Жанр вже існує",
	KeyPlatformNotFound:  "Платформу не знайдено",
	KeyPublisherNotFound: "Видавця не знайдено",
	KeyPublisherExists:   "Видавець вже існує",

	KeyCommentAdded:    "Коментар додано",
	KeyCommentDeleted:  "Коментар видалено",
	KeyCommentNotFound: "Коментар не знайдено",
	KeyCommentBanned:   "Автора коментаря заблоковано",

	KeyOrderNotFound:     "Замовлення не знайдено",
	KeyOrderEmpty:        "Кошик порожній",
	KeyOrderPaid:         "Замовлення оплачено",
	KeyOrderShipped:      "Замовлення відправлено",
	KeyBasketItemAdded:   "Товар додано до кошика",
	KeyBasketItemRemoved: "Товар видалено з кошика",
	KeyPaymentFailed:     "Помилка оплати",
	KeyInvoiceReady:      "Рахунок готовий",

	KeyFileUploadSuccess: "Файл успішно завантажено",
	KeyFileUploadFailed:  "Не вдалося завантажити файл",

	KeyValidationInvalid: "Помилка валідації",
	KeyRateLimited:       "Забагато запитів, спробуйте пізніше",
}
