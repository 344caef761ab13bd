package domain

var (
	EXERCISE_GENERATE_SUCCESS         = "Berhasil membuat latihan"
	EXERCISE_GENERATE_EXISTING        = "Masih ada latihan yang belum dikumpulkan"
	EXERCISE_GENERATE_FAILED          = "Gagal membuat latihan"
	EXERCISE_SUBMIT_SUCCESS           = "Berhasil mengumpulkan latihan"
	EXERCISE_SUBMIT_FAILED            = "Gagal mengumpulkan latihan"
	EXERCISE_DISCARD_SUCCESS          = "Berhasil membatalkan latihan"
	EXERCISE_DISCARD_FAILED           = "Gagal membatalkan latihan"
	EXERCISE_GET_SUCCESS              = "Berhasil mendapatkan latihan"
	EXERCISE_GET_FAILED               = "Gagal mendapatkan latihan"
	EXERCISE_LIST_SUBMISSIONS_SUCCESS = "Berhasil mendapatkan riwayat latihan"
	EXERCISE_LIST_SUBMISSIONS_FAILED  = "Gagal mendapatkan riwayat latihan"
	EXERCISE_STATS_SUCCESS            = "Berhasil mendapatkan statistik"
	EXERCISE_STATS_FAILED             = "Gagal mendapatkan statistik"

	EXERCISE_NOT_FOUND         = "Latihan tidak ditemukan"
	EXERCISE_ALREADY_SUBMITTED = "Latihan sudah dikumpulkan"
	EXERCISE_NOT_OWNER         = "Latihan bukan milik anak ini"
	LEARNER_ID_REQUIRED        = "Header X-Learner-ID wajib diisi"
	LEARNER_NOT_FOUND          = "Anak tidak ditemukan"
	IMAGE_REQUIRED             = "Gambar wajib diunggah"
	IMAGE_INVALID              = "Gambar tidak valid"
)
