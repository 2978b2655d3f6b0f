package app

// User-facing texts shown in regions and statuses.
const (
	textLoading             = "Yükleniyor..."
	textMenuLoadingHint     = "Menü yükleniyor..."
	textReviewsLoadingHint  = "Yorumlar yükleniyor..."
	textCatalogFailed       = "Restoranlar yüklenirken hata oluştu."
	textMenuFailed          = "Menü yüklenemedi."
	textReviewsFailed       = "Yorumlar yüklenemedi."
	textOwnerOrdersFailed   = "Siparişler yüklenemedi."
	textSelectFirst         = "Önce restoran seçin."
	textCartEmpty           = "Sepet boş, önce ürün ekleyin."
	textOrderFailed         = "Sipariş kaydedilemedi"
	textOrderPlacedFormat   = "Sipariş alındı (#%d) • Toplam %s"
	textReviewAdded         = "Yorum eklendi!"
	textReviewFailed        = "Yorum kaydedilemedi"
	textOwnerItemAdded      = "Ürün eklendi"
	textOwnerItemFailed     = "Ürün eklenemedi"
	textRegisterSucceeded   = "Kayıt başarılı, giriş yapıldı."
	textLoginSucceeded      = "Giriş başarılı"
	textRegisterFailed      = "Hata oluştu"
	textLoginFailed         = "Hatalı giriş"
	defaultReviewRating     = 5
)
