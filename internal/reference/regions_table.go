// Clickscope - Marketing Click-Stream Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickscope

package reference

// builtinRegions is the static region directory: federal subject codes with
// display names and, where known, the administrative centre coordinates.
var builtinRegions = []RegionInfo{
	{ID: 0, Name: UnresolvedName},
	{ID: 1, Name: "Республика Адыгея", Latitude: 44.6098, Longitude: 40.1004, HasCoordinates: true},
	{ID: 2, Name: "Республика Башкортостан", Latitude: 54.7351, Longitude: 55.9587, HasCoordinates: true},
	{ID: 3, Name: "Республика Бурятия", Latitude: 52.0495, Longitude: 107.0847, HasCoordinates: true},
	{ID: 4, Name: "Республика Алтай", Latitude: 50.7114, Longitude: 86.8576, HasCoordinates: true},
	{ID: 5, Name: "Республика Дагестан", Latitude: 42.9849, Longitude: 47.5046, HasCoordinates: true},
	{ID: 6, Name: "Республика Ингушетия", Latitude: 43.1151, Longitude: 45.3397, HasCoordinates: true},
	{ID: 7, Name: "Кабардино-Балкарская Республика", Latitude: 43.4846, Longitude: 43.6071, HasCoordinates: true},
	{ID: 8, Name: "Республика Калмыкия", Latitude: 46.308, Longitude: 44.2557, HasCoordinates: true},
	{ID: 9, Name: "Карачаево-Черкесская Республика", Latitude: 43.92, Longitude: 41.7831, HasCoordinates: true},
	{ID: 10, Name: "Республика Карелия", Latitude: 61.784, Longitude: 34.3469, HasCoordinates: true},
	{ID: 11, Name: "Республика Коми", Latitude: 61.6688, Longitude: 50.8364, HasCoordinates: true},
	{ID: 12, Name: "Республика Марий Эл", Latitude: 56.6344, Longitude: 46.8654, HasCoordinates: true},
	{ID: 13, Name: "Республика Мордовия", Latitude: 54.4412, Longitude: 44.4666, HasCoordinates: true},
	{ID: 14, Name: "Республика Саха (Якутия)", Latitude: 66.9416, Longitude: 129.6425, HasCoordinates: true},
	{ID: 15, Name: "Республика Северная Осетия - Алания", Latitude: 43.0241, Longitude: 44.6814, HasCoordinates: true},
	{ID: 16, Name: "Республика Татарстан", Latitude: 55.7963, Longitude: 49.1084, HasCoordinates: true},
	{ID: 17, Name: "Республика Тыва", Latitude: 51.7191, Longitude: 94.4378, HasCoordinates: true},
	{ID: 18, Name: "Удмуртская Республика", Latitude: 57.0671, Longitude: 53.0273, HasCoordinates: true},
	{ID: 19, Name: "Республика Хакасия", Latitude: 53.7222, Longitude: 91.4425, HasCoordinates: true},
	{ID: 20, Name: "Чеченская Республика", Latitude: 43.3178, Longitude: 45.6949, HasCoordinates: true},
	{ID: 21, Name: "Чувашская Республика", Latitude: 56.1439, Longitude: 47.2489, HasCoordinates: true},
	{ID: 22, Name: "Алтайский край", Latitude: 52.6932, Longitude: 82.6935, HasCoordinates: true},
	{ID: 23, Name: "Краснодарский край", Latitude: 45.0355, Longitude: 38.9753, HasCoordinates: true},
	{ID: 24, Name: "Красноярский край", Latitude: 56.0184, Longitude: 92.8672, HasCoordinates: true},
	{ID: 25, Name: "Приморский край", Latitude: 43.1736, Longitude: 131.8955, HasCoordinates: true},
	{ID: 26, Name: "Ставропольский край", Latitude: 45.0448, Longitude: 41.9692, HasCoordinates: true},
	{ID: 27, Name: "Хабаровский край", Latitude: 48.4802, Longitude: 135.0719, HasCoordinates: true},
	{ID: 28, Name: "Амурская область", Latitude: 50.2907, Longitude: 127.5272, HasCoordinates: true},
	{ID: 29, Name: "Архангельская область", Latitude: 64.5393, Longitude: 40.5169, HasCoordinates: true},
	{ID: 30, Name: "Астраханская область", Latitude: 46.3479, Longitude: 48.0336, HasCoordinates: true},
	{ID: 31, Name: "Белгородская область", Latitude: 50.5956, Longitude: 36.5873, HasCoordinates: true},
	{ID: 32, Name: "Брянская область", Latitude: 53.2436, Longitude: 34.3634, HasCoordinates: true},
	{ID: 33, Name: "Владимирская область", Latitude: 56.129, Longitude: 40.407, HasCoordinates: true},
	{ID: 34, Name: "Волгоградская область", Latitude: 48.7071, Longitude: 44.5169, HasCoordinates: true},
	{ID: 35, Name: "Вологодская область", Latitude: 59.2181, Longitude: 39.8886, HasCoordinates: true},
	{ID: 36, Name: "Воронежская область", Latitude: 51.672, Longitude: 39.1843, HasCoordinates: true},
	{ID: 37, Name: "Ивановская область", Latitude: 57.0004, Longitude: 40.9739, HasCoordinates: true},
	{ID: 38, Name: "Иркутская область", Latitude: 52.2864, Longitude: 104.2807, HasCoordinates: true},
	{ID: 39, Name: "Калининградская область", Latitude: 54.7104, Longitude: 20.4522, HasCoordinates: true},
	{ID: 40, Name: "Калужская область", Latitude: 54.5138, Longitude: 36.2612, HasCoordinates: true},
	{ID: 41, Name: "Камчатский край", Latitude: 53.0241, Longitude: 158.6439, HasCoordinates: true},
	{ID: 42, Name: "Кемеровская область", Latitude: 55.3545, Longitude: 86.0883, HasCoordinates: true},
	{ID: 43, Name: "Кировская область", Latitude: 58.6036, Longitude: 49.668, HasCoordinates: true},
	{ID: 44, Name: "Костромская область", Latitude: 58.55, Longitude: 43.6833, HasCoordinates: true},
	{ID: 45, Name: "Курганская область", Latitude: 55.4408, Longitude: 65.3411, HasCoordinates: true},
	{ID: 46, Name: "Курская область", Latitude: 51.7304, Longitude: 36.1936, HasCoordinates: true},
	{ID: 47, Name: "Ленинградская область", Latitude: 59.9391, Longitude: 30.3159, HasCoordinates: true},
	{ID: 48, Name: "Липецкая область", Latitude: 52.6088, Longitude: 39.5992, HasCoordinates: true},
	{ID: 49, Name: "Магаданская область", Latitude: 59.5612, Longitude: 150.7989, HasCoordinates: true},
	{ID: 50, Name: "Московская область", Latitude: 55.5043, Longitude: 36.2712, HasCoordinates: true},
	{ID: 51, Name: "Мурманская область", Latitude: 68.9585, Longitude: 33.0827, HasCoordinates: true},
	{ID: 52, Name: "Нижегородская область", Latitude: 56.3269, Longitude: 44.0065, HasCoordinates: true},
	{ID: 53, Name: "Новгородская область", Latitude: 58.5215, Longitude: 31.2755, HasCoordinates: true},
	{ID: 54, Name: "Новосибирская область", Latitude: 55.0084, Longitude: 82.9357, HasCoordinates: true},
	{ID: 55, Name: "Омская область", Latitude: 54.9893, Longitude: 73.3682, HasCoordinates: true},
	{ID: 56, Name: "Оренбургская область", Latitude: 51.7686, Longitude: 55.0974, HasCoordinates: true},
	{ID: 57, Name: "Орловская область", Latitude: 52.9674, Longitude: 36.0696, HasCoordinates: true},
	{ID: 58, Name: "Пензенская область", Latitude: 53.1959, Longitude: 45.0183, HasCoordinates: true},
	{ID: 59, Name: "Пермский край", Latitude: 58.0105, Longitude: 56.2502, HasCoordinates: true},
	{ID: 60, Name: "Псковская область", Latitude: 57.8194, Longitude: 28.3324, HasCoordinates: true},
	{ID: 61, Name: "Ростовская область", Latitude: 47.2224, Longitude: 39.7187, HasCoordinates: true},
	{ID: 62, Name: "Рязанская область", Latitude: 54.6296, Longitude: 39.7419, HasCoordinates: true},
	{ID: 63, Name: "Самарская область", Latitude: 53.1959, Longitude: 50.1002, HasCoordinates: true},
	{ID: 64, Name: "Саратовская область", Latitude: 51.5336, Longitude: 46.0343, HasCoordinates: true},
	{ID: 65, Name: "Сахалинская область", Latitude: 46.9591, Longitude: 142.738, HasCoordinates: true},
	{ID: 66, Name: "Свердловская область", Latitude: 56.8389, Longitude: 60.6057, HasCoordinates: true},
	{ID: 67, Name: "Смоленская область", Latitude: 54.7826, Longitude: 32.0453, HasCoordinates: true},
	{ID: 68, Name: "Тамбовская область", Latitude: 52.7212, Longitude: 41.4523, HasCoordinates: true},
	{ID: 69, Name: "Тверская область", Latitude: 56.8587, Longitude: 35.9176, HasCoordinates: true},
	{ID: 70, Name: "Томская область", Latitude: 56.4846, Longitude: 84.9476, HasCoordinates: true},
	{ID: 71, Name: "Тульская область", Latitude: 54.1931, Longitude: 37.6173, HasCoordinates: true},
	{ID: 72, Name: "Тюменская область", Latitude: 57.153, Longitude: 65.5343, HasCoordinates: true},
	{ID: 73, Name: "Ульяновская область", Latitude: 54.3142, Longitude: 48.4031, HasCoordinates: true},
	{ID: 74, Name: "Челябинская область", Latitude: 55.1644, Longitude: 61.4368, HasCoordinates: true},
	{ID: 75, Name: "Забайкальский край"},
	{ID: 76, Name: "Ярославская область", Latitude: 57.6261, Longitude: 39.8845, HasCoordinates: true},
	{ID: 77, Name: "Москва", Latitude: 55.7558, Longitude: 37.6173, HasCoordinates: true},
	{ID: 78, Name: "Санкт-Петербург", Latitude: 59.9343, Longitude: 30.3351, HasCoordinates: true},
	{ID: 79, Name: "Еврейская автономная область", Latitude: 48.4808, Longitude: 132.5067, HasCoordinates: true},
	{ID: 82, Name: "Республика Крым", Latitude: 45.0469, Longitude: 34.1008, HasCoordinates: true},
	{ID: 83, Name: "Ненецкий автономный округ", Latitude: 67.6381, Longitude: 53.0069, HasCoordinates: true},
	{ID: 86, Name: "Ханты-Мансийский автономный округ - Югра", Latitude: 61.0032, Longitude: 69.0189, HasCoordinates: true},
	{ID: 87, Name: "Чукотский автономный округ", Latitude: 66.3167, Longitude: 171.0167, HasCoordinates: true},
	{ID: 89, Name: "Ямало-Ненецкий автономный округ", Latitude: 66.5299, Longitude: 66.6136, HasCoordinates: true},
	{ID: 92, Name: "Севастополь", Latitude: 44.6167, Longitude: 33.5254, HasCoordinates: true},
	{ID: 101, Name: "Забайкальский край", Latitude: 52.0336, Longitude: 113.5014, HasCoordinates: true},
}
